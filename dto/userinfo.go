package dto

// UserInfoAction is the action of a UserInfoResponse.
type UserInfoAction string

const (
	UserInfoInternalServerError UserInfoAction = "INTERNAL_SERVER_ERROR"
	UserInfoBadRequest          UserInfoAction = "BAD_REQUEST"
	UserInfoUnauthorized        UserInfoAction = "UNAUTHORIZED"
	UserInfoForbidden           UserInfoAction = "FORBIDDEN"
	UserInfoOK                  UserInfoAction = "OK"
)

// UserInfoRequest is the request to /api/auth/userinfo.
type UserInfoRequest struct {
	Token             string `json:"token,omitempty"`
	ClientCertificate string `json:"clientCertificate,omitempty"`
	DPoP              string `json:"dpop,omitempty"`
	Htm               string `json:"htm,omitempty"`
	Htu               string `json:"htu,omitempty"`
}

// UserInfoResponse is the response from /api/auth/userinfo.
type UserInfoResponse struct {
	APIResponse

	Action            UserInfoAction `json:"action,omitempty"`
	ClientID          int64          `json:"clientId,omitempty"`
	Subject           string         `json:"subject,omitempty"`
	Scopes            []string       `json:"scopes,omitempty"`
	Claims            []string       `json:"claims,omitempty"`
	Token             string         `json:"token,omitempty"`
	ResponseContent   string         `json:"responseContent,omitempty"`
	Properties        []Property     `json:"properties,omitempty"`
	ClientIDAlias     string         `json:"clientIdAlias,omitempty"`
	ClientIDAliasUsed bool           `json:"clientIdAliasUsed,omitempty"`
	UserInfoClaims    string         `json:"userInfoClaims,omitempty"`
	ConsentedClaims   []string       `json:"consentedClaims,omitempty"`
	ServiceAttributes []Pair         `json:"serviceAttributes,omitempty"`
	ClientAttributes  []Pair         `json:"clientAttributes,omitempty"`
}

// UserInfoIssueRequest is the request to /api/auth/userinfo/issue. Claims is
// a JSON object with the claim values of the subject, keyed by claim name.
type UserInfoIssueRequest struct {
	Token       string `json:"token,omitempty"`
	Claims      string `json:"claims,omitempty"`
	Sub         string `json:"sub,omitempty"`
	ClaimsForTx string `json:"claimsForTx,omitempty"`
}

// UserInfoIssueAction is the action of a UserInfoIssueResponse.
type UserInfoIssueAction string

const (
	UserInfoIssueInternalServerError UserInfoIssueAction = "INTERNAL_SERVER_ERROR"
	UserInfoIssueBadRequest          UserInfoIssueAction = "BAD_REQUEST"
	UserInfoIssueUnauthorized        UserInfoIssueAction = "UNAUTHORIZED"
	UserInfoIssueForbidden           UserInfoIssueAction = "FORBIDDEN"
	UserInfoIssueJSON                UserInfoIssueAction = "JSON"
	UserInfoIssueJWT                 UserInfoIssueAction = "JWT"
)

// UserInfoIssueResponse is the response from /api/auth/userinfo/issue.
type UserInfoIssueResponse struct {
	APIResponse

	Action          UserInfoIssueAction `json:"action,omitempty"`
	ResponseContent string              `json:"responseContent,omitempty"`
}
