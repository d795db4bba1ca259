package dto

import "fmt"

// BackchannelAuthenticationAction is the action of a
// BackchannelAuthenticationResponse (CIBA).
type BackchannelAuthenticationAction string

const (
	BackchannelAuthenticationInternalServerError BackchannelAuthenticationAction = "INTERNAL_SERVER_ERROR"
	BackchannelAuthenticationBadRequest          BackchannelAuthenticationAction = "BAD_REQUEST"
	BackchannelAuthenticationUnauthorized        BackchannelAuthenticationAction = "UNAUTHORIZED"
	BackchannelAuthenticationUserIdentification  BackchannelAuthenticationAction = "USER_IDENTIFICATION"
)

// BackchannelAuthenticationRequest is the request to
// /api/backchannel/authentication. Parameters is the raw form body of the
// CIBA backchannel authentication request.
type BackchannelAuthenticationRequest struct {
	Parameters            string   `json:"parameters,omitempty"`
	ClientID              string   `json:"clientId,omitempty"`
	ClientSecret          string   `json:"clientSecret,omitempty"`
	ClientCertificate     string   `json:"clientCertificate,omitempty"`
	ClientCertificatePath []string `json:"clientCertificatePath,omitempty"`
}

// BackchannelAuthenticationResponse is the response from
// /api/backchannel/authentication. For action=USER_IDENTIFICATION the caller
// identifies the end-user from the hints and then calls
// /api/backchannel/authentication/issue.
type BackchannelAuthenticationResponse struct {
	APIResponse

	Action                  BackchannelAuthenticationAction `json:"action,omitempty"`
	ResponseContent         string                          `json:"responseContent,omitempty"`
	ClientID                int64                           `json:"clientId,omitempty"`
	ClientIDAlias           string                          `json:"clientIdAlias,omitempty"`
	ClientIDAliasUsed       bool                            `json:"clientIdAliasUsed,omitempty"`
	ClientName              string                          `json:"clientName,omitempty"`
	DeliveryMode            DeliveryMode                    `json:"deliveryMode,omitempty"`
	Scopes                  []Scope                         `json:"scopes,omitempty"`
	ClaimNames              []string                        `json:"claimNames,omitempty"`
	ClientNotificationToken string                          `json:"clientNotificationToken,omitempty"`
	ACRs                    []string                        `json:"acrs,omitempty"`
	HintType                string                          `json:"hintType,omitempty"`
	Hint                    string                          `json:"hint,omitempty"`
	Sub                     string                          `json:"sub,omitempty"`
	BindingMessage          string                          `json:"bindingMessage,omitempty"`
	UserCode                string                          `json:"userCode,omitempty"`
	UserCodeRequired        bool                            `json:"userCodeRequired,omitempty"`
	RequestedExpiry         int                             `json:"requestedExpiry,omitempty"`
	RequestContext          string                          `json:"requestContext,omitempty"`
	Resources               []string                        `json:"resources,omitempty"`
	AuthorizationDetails    *AuthzDetails                   `json:"authorizationDetails,omitempty"`
	Ticket                  string                          `json:"ticket,omitempty"`
}

// Summarize renders the response on one line for logging.
func (r *BackchannelAuthenticationResponse) Summarize() string {
	return fmt.Sprintf(
		"action=%s, clientId=%d (%s), deliveryMode=%s, hintType=%s, scopes=%s, bindingMessage=%s, ticket=%s",
		r.Action, r.ClientID, r.ClientName, r.DeliveryMode, r.HintType,
		joinScopeNames(r.Scopes), r.BindingMessage, r.Ticket,
	)
}

// BackchannelAuthenticationIssueAction is the action of a
// BackchannelAuthenticationIssueResponse.
type BackchannelAuthenticationIssueAction string

const (
	BackchannelAuthenticationIssueInternalServerError BackchannelAuthenticationIssueAction = "INTERNAL_SERVER_ERROR"
	BackchannelAuthenticationIssueInvalidTicket       BackchannelAuthenticationIssueAction = "INVALID_TICKET"
	BackchannelAuthenticationIssueOK                  BackchannelAuthenticationIssueAction = "OK"
)

// BackchannelAuthenticationIssueRequest is the request to
// /api/backchannel/authentication/issue: issue the auth_req_id after the
// end-user was identified.
type BackchannelAuthenticationIssueRequest struct {
	Ticket string `json:"ticket,omitempty"`
}

// BackchannelAuthenticationIssueResponse is the response from
// /api/backchannel/authentication/issue.
type BackchannelAuthenticationIssueResponse struct {
	APIResponse

	Action          BackchannelAuthenticationIssueAction `json:"action,omitempty"`
	ResponseContent string                               `json:"responseContent,omitempty"`
	AuthReqID       string                               `json:"authReqId,omitempty"`
	ExpiresIn       int                                  `json:"expiresIn,omitempty"`
	Interval        int                                  `json:"interval,omitempty"`
}

// BackchannelAuthenticationCompleteResult is the outcome of the end-user
// authentication/authorization process.
type BackchannelAuthenticationCompleteResult string

const (
	BcCompleteAuthorized        BackchannelAuthenticationCompleteResult = "AUTHORIZED"
	BcCompleteAccessDenied      BackchannelAuthenticationCompleteResult = "ACCESS_DENIED"
	BcCompleteTransactionFailed BackchannelAuthenticationCompleteResult = "TRANSACTION_FAILED"
)

// BackchannelAuthenticationCompleteRequest is the request to
// /api/backchannel/authentication/complete.
type BackchannelAuthenticationCompleteRequest struct {
	Ticket           string                                  `json:"ticket,omitempty"`
	Result           BackchannelAuthenticationCompleteResult `json:"result,omitempty"`
	Subject          string                                  `json:"subject,omitempty"`
	Sub              string                                  `json:"sub,omitempty"`
	AuthTime         int64                                   `json:"authTime,omitempty"`
	ACR              string                                  `json:"acr,omitempty"`
	Claims           string                                  `json:"claims,omitempty"`
	Properties       []Property                              `json:"properties,omitempty"`
	Scopes           []string                                `json:"scopes,omitempty"`
	IDTHeaderParams  string                                  `json:"idtHeaderParams,omitempty"`
	ConsentedClaims  []string                                `json:"consentedClaims,omitempty"`
	ErrorDescription string                                  `json:"errorDescription,omitempty"`
}

// BackchannelAuthenticationCompleteAction is the action of a
// BackchannelAuthenticationCompleteResponse.
type BackchannelAuthenticationCompleteAction string

const (
	BcCompleteActionServerError  BackchannelAuthenticationCompleteAction = "SERVER_ERROR"
	BcCompleteActionNoAction     BackchannelAuthenticationCompleteAction = "NO_ACTION"
	BcCompleteActionNotification BackchannelAuthenticationCompleteAction = "NOTIFICATION"
)

// BackchannelAuthenticationCompleteResponse is the response from
// /api/backchannel/authentication/complete. For ping/push delivery the caller
// notifies the client notification endpoint with ResponseContent.
type BackchannelAuthenticationCompleteResponse struct {
	APIResponse

	Action                     BackchannelAuthenticationCompleteAction `json:"action,omitempty"`
	ResponseContent            string                                  `json:"responseContent,omitempty"`
	ClientID                   int64                                   `json:"clientId,omitempty"`
	ClientName                 string                                  `json:"clientName,omitempty"`
	DeliveryMode               DeliveryMode                            `json:"deliveryMode,omitempty"`
	ClientNotificationEndpoint string                                  `json:"clientNotificationEndpoint,omitempty"`
	ClientNotificationToken    string                                  `json:"clientNotificationToken,omitempty"`
	AuthReqID                  string                                  `json:"authReqId,omitempty"`
	AccessToken                string                                  `json:"accessToken,omitempty"`
	RefreshToken               string                                  `json:"refreshToken,omitempty"`
	IDToken                    string                                  `json:"idToken,omitempty"`
}

// BackchannelAuthenticationFailReason explains why the backchannel
// authentication request must fail.
type BackchannelAuthenticationFailReason string

const (
	BcFailExpiredLoginHintToken BackchannelAuthenticationFailReason = "EXPIRED_LOGIN_HINT_TOKEN"
	BcFailUnknownUserID         BackchannelAuthenticationFailReason = "UNKNOWN_USER_ID"
	BcFailUnauthorizedClient    BackchannelAuthenticationFailReason = "UNAUTHORIZED_CLIENT"
	BcFailMissingUserCode       BackchannelAuthenticationFailReason = "MISSING_USER_CODE"
	BcFailInvalidUserCode       BackchannelAuthenticationFailReason = "INVALID_USER_CODE"
	BcFailInvalidBindingMessage BackchannelAuthenticationFailReason = "INVALID_BINDING_MESSAGE"
	BcFailAccessDenied          BackchannelAuthenticationFailReason = "ACCESS_DENIED"
	BcFailServerError           BackchannelAuthenticationFailReason = "SERVER_ERROR"
)

// BackchannelAuthenticationFailRequest is the request to
// /api/backchannel/authentication/fail.
type BackchannelAuthenticationFailRequest struct {
	Ticket           string                              `json:"ticket,omitempty"`
	Reason           BackchannelAuthenticationFailReason `json:"reason,omitempty"`
	ErrorDescription string                              `json:"errorDescription,omitempty"`
}

// BackchannelAuthenticationFailAction is the action of a
// BackchannelAuthenticationFailResponse.
type BackchannelAuthenticationFailAction string

const (
	BcFailActionInternalServerError BackchannelAuthenticationFailAction = "INTERNAL_SERVER_ERROR"
	BcFailActionBadRequest          BackchannelAuthenticationFailAction = "BAD_REQUEST"
	BcFailActionForbidden           BackchannelAuthenticationFailAction = "FORBIDDEN"
)

// BackchannelAuthenticationFailResponse is the response from
// /api/backchannel/authentication/fail.
type BackchannelAuthenticationFailResponse struct {
	APIResponse

	Action          BackchannelAuthenticationFailAction `json:"action,omitempty"`
	ResponseContent string                              `json:"responseContent,omitempty"`
}
