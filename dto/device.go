package dto

// DeviceAuthorizationAction is the action of a DeviceAuthorizationResponse
// (RFC 8628 Device Authorization Grant).
type DeviceAuthorizationAction string

const (
	DeviceAuthorizationInternalServerError DeviceAuthorizationAction = "INTERNAL_SERVER_ERROR"
	DeviceAuthorizationBadRequest          DeviceAuthorizationAction = "BAD_REQUEST"
	DeviceAuthorizationUnauthorized        DeviceAuthorizationAction = "UNAUTHORIZED"
	DeviceAuthorizationOK                  DeviceAuthorizationAction = "OK"
)

// DeviceAuthorizationRequest is the request to /api/device/authorization.
type DeviceAuthorizationRequest struct {
	Parameters            string   `json:"parameters,omitempty"`
	ClientID              string   `json:"clientId,omitempty"`
	ClientSecret          string   `json:"clientSecret,omitempty"`
	ClientCertificate     string   `json:"clientCertificate,omitempty"`
	ClientCertificatePath []string `json:"clientCertificatePath,omitempty"`
}

// DeviceAuthorizationResponse is the response from /api/device/authorization.
type DeviceAuthorizationResponse struct {
	APIResponse

	Action                  DeviceAuthorizationAction `json:"action,omitempty"`
	ResponseContent         string                    `json:"responseContent,omitempty"`
	ClientID                int64                     `json:"clientId,omitempty"`
	ClientName              string                    `json:"clientName,omitempty"`
	Scopes                  []Scope                   `json:"scopes,omitempty"`
	ClaimNames              []string                  `json:"claimNames,omitempty"`
	ACRs                    []string                  `json:"acrs,omitempty"`
	DeviceCode              string                    `json:"deviceCode,omitempty"`
	UserCode                string                    `json:"userCode,omitempty"`
	VerificationURI         string                    `json:"verificationUri,omitempty"`
	VerificationURIComplete string                    `json:"verificationUriComplete,omitempty"`
	ExpiresIn               int                       `json:"expiresIn,omitempty"`
	Interval                int                       `json:"interval,omitempty"`
	Resources               []string                  `json:"resources,omitempty"`
}

// DeviceCompleteResult is the outcome of the end-user interaction in the
// device flow.
type DeviceCompleteResult string

const (
	DeviceCompleteAuthorized        DeviceCompleteResult = "AUTHORIZED"
	DeviceCompleteAccessDenied      DeviceCompleteResult = "ACCESS_DENIED"
	DeviceCompleteTransactionFailed DeviceCompleteResult = "TRANSACTION_FAILED"
)

// DeviceCompleteRequest is the request to /api/device/complete, called after
// the end-user approved or denied the user code on the verification page.
type DeviceCompleteRequest struct {
	UserCode         string               `json:"userCode,omitempty"`
	Result           DeviceCompleteResult `json:"result,omitempty"`
	Subject          string               `json:"subject,omitempty"`
	Sub              string               `json:"sub,omitempty"`
	AuthTime         int64                `json:"authTime,omitempty"`
	ACR              string               `json:"acr,omitempty"`
	Claims           string               `json:"claims,omitempty"`
	Properties       []Property           `json:"properties,omitempty"`
	Scopes           []string             `json:"scopes,omitempty"`
	ErrorDescription string               `json:"errorDescription,omitempty"`
}

// DeviceCompleteAction is the action of a DeviceCompleteResponse.
type DeviceCompleteAction string

const (
	DeviceCompleteActionServerError      DeviceCompleteAction = "SERVER_ERROR"
	DeviceCompleteActionUserCodeExpired  DeviceCompleteAction = "USER_CODE_EXPIRED"
	DeviceCompleteActionUserCodeNotExist DeviceCompleteAction = "USER_CODE_NOT_EXIST"
	DeviceCompleteActionInvalidRequest   DeviceCompleteAction = "INVALID_REQUEST"
	DeviceCompleteActionSuccess          DeviceCompleteAction = "SUCCESS"
)

// DeviceCompleteResponse is the response from /api/device/complete.
type DeviceCompleteResponse struct {
	APIResponse

	Action DeviceCompleteAction `json:"action,omitempty"`
}

// DeviceVerificationAction is the action of a DeviceVerificationResponse.
type DeviceVerificationAction string

const (
	DeviceVerificationInternalServerError DeviceVerificationAction = "INTERNAL_SERVER_ERROR"
	DeviceVerificationNotExist            DeviceVerificationAction = "NOT_EXIST"
	DeviceVerificationExpired             DeviceVerificationAction = "EXPIRED"
	DeviceVerificationValid               DeviceVerificationAction = "VALID"
)

// DeviceVerificationRequest is the request to /api/device/verification:
// look up the pending authorization bound to a user code.
type DeviceVerificationRequest struct {
	UserCode string `json:"userCode,omitempty"`
}

// DeviceVerificationResponse is the response from /api/device/verification.
type DeviceVerificationResponse struct {
	APIResponse

	Action     DeviceVerificationAction `json:"action,omitempty"`
	ClientID   int64                    `json:"clientId,omitempty"`
	ClientName string                   `json:"clientName,omitempty"`
	Scopes     []Scope                  `json:"scopes,omitempty"`
	ClaimNames []string                 `json:"claimNames,omitempty"`
	ACRs       []string                 `json:"acrs,omitempty"`
	ExpiresAt  int64                    `json:"expiresAt,omitempty"`
	Resources  []string                 `json:"resources,omitempty"`
}
