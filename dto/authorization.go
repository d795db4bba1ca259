package dto

import (
	"fmt"
	"strings"
)

// AuthorizationAction tells the caller of /api/auth/authorization what kind
// of HTTP response its authorization endpoint should return.
type AuthorizationAction string

const (
	AuthorizationInternalServerError AuthorizationAction = "INTERNAL_SERVER_ERROR"
	AuthorizationBadRequest          AuthorizationAction = "BAD_REQUEST"
	AuthorizationLocation            AuthorizationAction = "LOCATION"
	AuthorizationForm                AuthorizationAction = "FORM"
	AuthorizationNoInteraction       AuthorizationAction = "NO_INTERACTION"
	AuthorizationInteraction         AuthorizationAction = "INTERACTION"
)

// AuthorizationRequest is the request to /api/auth/authorization.
// Parameters is the raw query/form of the authorization request the caller
// received from the client application, untouched.
type AuthorizationRequest struct {
	Parameters string `json:"parameters,omitempty"`
	Context    string `json:"context,omitempty"`
}

// AuthorizationResponse is the response from /api/auth/authorization.
type AuthorizationResponse struct {
	APIResponse

	Action               AuthorizationAction   `json:"action,omitempty"`
	Service              *Service              `json:"service,omitempty"`
	Client               *Client               `json:"client,omitempty"`
	Display              Display               `json:"display,omitempty"`
	MaxAge               int                   `json:"maxAge,omitempty"`
	Scopes               []Scope               `json:"scopes,omitempty"`
	DynamicScopes        []Scope               `json:"dynamicScopes,omitempty"`
	UILocales            []string              `json:"uiLocales,omitempty"`
	ClaimsLocales        []string              `json:"claimsLocales,omitempty"`
	Claims               []string              `json:"claims,omitempty"`
	ClaimsAtUserInfo     []string              `json:"claimsAtUserInfo,omitempty"`
	ACREssential         bool                  `json:"acrEssential,omitempty"`
	ACRs                 []string              `json:"acrs,omitempty"`
	ClientIDAliasUsed    bool                  `json:"clientIdAliasUsed,omitempty"`
	Subject              string                `json:"subject,omitempty"`
	LoginHint            string                `json:"loginHint,omitempty"`
	Prompts              []Prompt              `json:"prompts,omitempty"`
	LowestPrompt         Prompt                `json:"lowestPrompt,omitempty"`
	IDTokenClaims        string                `json:"idTokenClaims,omitempty"`
	UserInfoClaims       string                `json:"userInfoClaims,omitempty"`
	RequestObjectPayload string                `json:"requestObjectPayload,omitempty"`
	Resources            []string              `json:"resources,omitempty"`
	AuthorizationDetails *AuthzDetails         `json:"authorizationDetails,omitempty"`
	Purpose              string                `json:"purpose,omitempty"`
	GMAction             GrantManagementAction `json:"gmAction,omitempty"`
	GrantID              string                `json:"grantId,omitempty"`
	Grant                *Grant                `json:"grant,omitempty"`
	GrantSubject         string                `json:"grantSubject,omitempty"`
	ResponseContent      string                `json:"responseContent,omitempty"`
	Ticket               string                `json:"ticket,omitempty"`
}

// Summarize renders the response on one line for logging. Never includes
// secrets; the ticket is an opaque short-lived handle and stays visible so
// operators can correlate the issue/fail call that follows.
func (r *AuthorizationResponse) Summarize() string {
	var clientID int64
	var clientName string
	if r.Client != nil {
		clientID = r.Client.ClientID
		clientName = r.Client.ClientName
	}
	var serviceName string
	if r.Service != nil {
		serviceName = r.Service.ServiceName
	}
	return fmt.Sprintf(
		"action=%s, service=%s, client=%d (%s), subject=%s, scopes=%s, prompts=%s, ticket=%s",
		r.Action, serviceName, clientID, clientName, r.Subject,
		joinScopeNames(r.Scopes), joinPrompts(r.Prompts), r.Ticket,
	)
}

func joinScopeNames(scopes []Scope) string {
	names := make([]string, 0, len(scopes))
	for _, s := range scopes {
		names = append(names, s.Name)
	}
	return strings.Join(names, " ")
}

func joinPrompts(prompts []Prompt) string {
	ps := make([]string, 0, len(prompts))
	for _, p := range prompts {
		ps = append(ps, string(p))
	}
	return strings.Join(ps, " ")
}

// AuthorizationIssueRequest is the request to /api/auth/authorization/issue,
// sent after the end-user was authenticated and granted consent.
type AuthorizationIssueRequest struct {
	Ticket               string        `json:"ticket,omitempty"`
	Subject              string        `json:"subject,omitempty"`
	Sub                  string        `json:"sub,omitempty"`
	AuthTime             int64         `json:"authTime,omitempty"`
	ACR                  string        `json:"acr,omitempty"`
	Claims               string        `json:"claims,omitempty"`
	Properties           []Property    `json:"properties,omitempty"`
	Scopes               []string      `json:"scopes,omitempty"`
	IDTHeaderParams      string        `json:"idtHeaderParams,omitempty"`
	AuthorizationDetails *AuthzDetails `json:"authorizationDetails,omitempty"`
	ConsentedClaims      []string      `json:"consentedClaims,omitempty"`
}

// AuthorizationIssueAction is the action of an AuthorizationIssueResponse.
type AuthorizationIssueAction string

const (
	AuthorizationIssueInternalServerError AuthorizationIssueAction = "INTERNAL_SERVER_ERROR"
	AuthorizationIssueBadRequest          AuthorizationIssueAction = "BAD_REQUEST"
	AuthorizationIssueLocation            AuthorizationIssueAction = "LOCATION"
	AuthorizationIssueForm                AuthorizationIssueAction = "FORM"
)

// AuthorizationIssueResponse is the response from /api/auth/authorization/issue.
type AuthorizationIssueResponse struct {
	APIResponse

	Action               AuthorizationIssueAction `json:"action,omitempty"`
	ResponseContent      string                   `json:"responseContent,omitempty"`
	AccessToken          string                   `json:"accessToken,omitempty"`
	AccessTokenExpiresAt int64                    `json:"accessTokenExpiresAt,omitempty"`
	AccessTokenDuration  int64                    `json:"accessTokenDuration,omitempty"`
	IDToken              string                   `json:"idToken,omitempty"`
	AuthorizationCode    string                   `json:"authorizationCode,omitempty"`
	JwtAccessToken       string                   `json:"jwtAccessToken,omitempty"`
}

// AuthorizationFailReason explains why the authorization request must fail.
type AuthorizationFailReason string

const (
	FailUnknown            AuthorizationFailReason = "UNKNOWN"
	FailNotLoggedIn        AuthorizationFailReason = "NOT_LOGGED_IN"
	FailMaxAgeNotSupported AuthorizationFailReason = "MAX_AGE_NOT_SUPPORTED"
	FailExceedsMaxAge      AuthorizationFailReason = "EXCEEDS_MAX_AGE"
	FailDifferentSubject   AuthorizationFailReason = "DIFFERENT_SUBJECT"
	FailACRNotSatisfied    AuthorizationFailReason = "ACR_NOT_SATISFIED"
	FailDenied             AuthorizationFailReason = "DENIED"
	FailServerError        AuthorizationFailReason = "SERVER_ERROR"
	FailNotAuthenticated   AuthorizationFailReason = "NOT_AUTHENTICATED"
	FailInvalidTarget      AuthorizationFailReason = "INVALID_TARGET"
)

// AuthorizationFailRequest is the request to /api/auth/authorization/fail.
type AuthorizationFailRequest struct {
	Ticket      string                  `json:"ticket,omitempty"`
	Reason      AuthorizationFailReason `json:"reason,omitempty"`
	Description string                  `json:"description,omitempty"`
}

// AuthorizationFailAction is the action of an AuthorizationFailResponse.
type AuthorizationFailAction string

const (
	AuthorizationFailInternalServerError AuthorizationFailAction = "INTERNAL_SERVER_ERROR"
	AuthorizationFailBadRequest          AuthorizationFailAction = "BAD_REQUEST"
	AuthorizationFailLocation            AuthorizationFailAction = "LOCATION"
	AuthorizationFailForm                AuthorizationFailAction = "FORM"
)

// AuthorizationFailResponse is the response from /api/auth/authorization/fail.
type AuthorizationFailResponse struct {
	APIResponse

	Action          AuthorizationFailAction `json:"action,omitempty"`
	ResponseContent string                  `json:"responseContent,omitempty"`
}
