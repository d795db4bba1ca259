package dto

import (
	"fmt"

	"github.com/dropDatabas3/authlete-go/internal/util"
)

// TokenAction tells the caller of /api/auth/token what kind of HTTP response
// its token endpoint should return.
type TokenAction string

const (
	TokenInternalServerError TokenAction = "INTERNAL_SERVER_ERROR"
	TokenInvalidClient       TokenAction = "INVALID_CLIENT"
	TokenBadRequest          TokenAction = "BAD_REQUEST"
	TokenPassword            TokenAction = "PASSWORD"
	TokenOK                  TokenAction = "OK"
	TokenTokenExchange       TokenAction = "TOKEN_EXCHANGE"
	TokenJWTBearer           TokenAction = "JWT_BEARER"
)

// TokenRequest is the request to /api/auth/token. Parameters is the raw
// form body of the token request; client credentials extracted from the
// Authorization header go in ClientID/ClientSecret.
type TokenRequest struct {
	Parameters            string     `json:"parameters,omitempty"`
	ClientID              string     `json:"clientId,omitempty"`
	ClientSecret          string     `json:"clientSecret,omitempty"`
	ClientCertificate     string     `json:"clientCertificate,omitempty"`
	ClientCertificatePath []string   `json:"clientCertificatePath,omitempty"`
	Properties            []Property `json:"properties,omitempty"`
	DPoP                  string     `json:"dpop,omitempty"`
	Htm                   string     `json:"htm,omitempty"`
	Htu                   string     `json:"htu,omitempty"`
}

// TokenResponse is the response from /api/auth/token.
type TokenResponse struct {
	APIResponse

	Action          TokenAction `json:"action,omitempty"`
	ResponseContent string      `json:"responseContent,omitempty"`

	// Para action=PASSWORD: credenciales a validar por el caller
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Ticket   string `json:"ticket,omitempty"`

	AccessToken           string        `json:"accessToken,omitempty"`
	AccessTokenExpiresAt  int64         `json:"accessTokenExpiresAt,omitempty"`
	AccessTokenDuration   int64         `json:"accessTokenDuration,omitempty"`
	RefreshToken          string        `json:"refreshToken,omitempty"`
	RefreshTokenExpiresAt int64         `json:"refreshTokenExpiresAt,omitempty"`
	RefreshTokenDuration  int64         `json:"refreshTokenDuration,omitempty"`
	IDToken               string        `json:"idToken,omitempty"`
	GrantType             GrantType     `json:"grantType,omitempty"`
	ClientID              int64         `json:"clientId,omitempty"`
	ClientIDAlias         string        `json:"clientIdAlias,omitempty"`
	ClientIDAliasUsed     bool          `json:"clientIdAliasUsed,omitempty"`
	Subject               string        `json:"subject,omitempty"`
	Scopes                []string      `json:"scopes,omitempty"`
	Properties            []Property    `json:"properties,omitempty"`
	JwtAccessToken        string        `json:"jwtAccessToken,omitempty"`
	AccessTokenResources  []string      `json:"accessTokenResources,omitempty"`
	AuthorizationDetails  *AuthzDetails `json:"authorizationDetails,omitempty"`
	GrantID               string        `json:"grantId,omitempty"`
	ServiceAttributes     []Pair        `json:"serviceAttributes,omitempty"`
	ClientAttributes      []Pair        `json:"clientAttributes,omitempty"`
}

// Summarize renders the response on one line for logging; tokens are masked.
func (r *TokenResponse) Summarize() string {
	return fmt.Sprintf(
		"action=%s, grantType=%s, clientId=%d, subject=%s, scopes=%v, accessToken=%s, refreshToken=%s, idToken=%s",
		r.Action, r.GrantType, r.ClientID, r.Subject, r.Scopes,
		util.MaskToken(r.AccessToken), util.MaskToken(r.RefreshToken), util.MaskToken(r.IDToken),
	)
}

// TokenIssueRequest is the request to /api/auth/token/issue
// (resource owner password flow, after the caller validated the credentials).
type TokenIssueRequest struct {
	Ticket     string     `json:"ticket,omitempty"`
	Subject    string     `json:"subject,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// TokenIssueAction is the action of a TokenIssueResponse.
type TokenIssueAction string

const (
	TokenIssueInternalServerError TokenIssueAction = "INTERNAL_SERVER_ERROR"
	TokenIssueOK                  TokenIssueAction = "OK"
)

// TokenIssueResponse is the response from /api/auth/token/issue.
type TokenIssueResponse struct {
	APIResponse

	Action                TokenIssueAction `json:"action,omitempty"`
	ResponseContent       string           `json:"responseContent,omitempty"`
	AccessToken           string           `json:"accessToken,omitempty"`
	AccessTokenExpiresAt  int64            `json:"accessTokenExpiresAt,omitempty"`
	AccessTokenDuration   int64            `json:"accessTokenDuration,omitempty"`
	RefreshToken          string           `json:"refreshToken,omitempty"`
	RefreshTokenExpiresAt int64            `json:"refreshTokenExpiresAt,omitempty"`
	RefreshTokenDuration  int64            `json:"refreshTokenDuration,omitempty"`
	ClientID              int64            `json:"clientId,omitempty"`
	Subject               string           `json:"subject,omitempty"`
	Scopes                []string         `json:"scopes,omitempty"`
	Properties            []Property       `json:"properties,omitempty"`
	JwtAccessToken        string           `json:"jwtAccessToken,omitempty"`
}

// TokenFailReason explains why the token request must fail.
type TokenFailReason string

const (
	TokenFailUnknown                         TokenFailReason = "UNKNOWN"
	TokenFailInvalidResourceOwnerCredentials TokenFailReason = "INVALID_RESOURCE_OWNER_CREDENTIALS"
	TokenFailInvalidTarget                   TokenFailReason = "INVALID_TARGET"
)

// TokenFailRequest is the request to /api/auth/token/fail.
type TokenFailRequest struct {
	Ticket string          `json:"ticket,omitempty"`
	Reason TokenFailReason `json:"reason,omitempty"`
}

// TokenFailAction is the action of a TokenFailResponse.
type TokenFailAction string

const (
	TokenFailInternalServerError TokenFailAction = "INTERNAL_SERVER_ERROR"
	TokenFailBadRequest          TokenFailAction = "BAD_REQUEST"
)

// TokenFailResponse is the response from /api/auth/token/fail.
type TokenFailResponse struct {
	APIResponse

	Action          TokenFailAction `json:"action,omitempty"`
	ResponseContent string          `json:"responseContent,omitempty"`
}

// TokenCreateRequest is the request to /api/auth/token/create: mint a token
// out of band, without going through an authorization flow.
type TokenCreateRequest struct {
	GrantType             GrantType  `json:"grantType,omitempty"`
	ClientID              int64      `json:"clientId,omitempty"`
	Subject               string     `json:"subject,omitempty"`
	Scopes                []string   `json:"scopes,omitempty"`
	AccessTokenDuration   int64      `json:"accessTokenDuration,omitempty"`
	RefreshTokenDuration  int64      `json:"refreshTokenDuration,omitempty"`
	Properties            []Property `json:"properties,omitempty"`
	AccessToken           string     `json:"accessToken,omitempty"`
	RefreshToken          string     `json:"refreshToken,omitempty"`
	AccessTokenPersistent bool       `json:"accessTokenPersistent,omitempty"`
	DpopKeyThumbprint     string     `json:"dpopKeyThumbprint,omitempty"`
}

// TokenCreateAction is the action of a TokenCreateResponse.
type TokenCreateAction string

const (
	TokenCreateInternalServerError TokenCreateAction = "INTERNAL_SERVER_ERROR"
	TokenCreateBadRequest          TokenCreateAction = "BAD_REQUEST"
	TokenCreateForbidden           TokenCreateAction = "FORBIDDEN"
	TokenCreateOK                  TokenCreateAction = "OK"
)

// TokenCreateResponse is the response from /api/auth/token/create.
type TokenCreateResponse struct {
	APIResponse

	Action       TokenCreateAction `json:"action,omitempty"`
	GrantType    GrantType         `json:"grantType,omitempty"`
	ClientID     int64             `json:"clientId,omitempty"`
	Subject      string            `json:"subject,omitempty"`
	Scopes       []string          `json:"scopes,omitempty"`
	AccessToken  string            `json:"accessToken,omitempty"`
	TokenType    string            `json:"tokenType,omitempty"`
	ExpiresIn    int64             `json:"expiresIn,omitempty"`
	ExpiresAt    int64             `json:"expiresAt,omitempty"`
	RefreshToken string            `json:"refreshToken,omitempty"`
	Properties   []Property        `json:"properties,omitempty"`
}

// TokenUpdateRequest is the request to /api/auth/token/update.
type TokenUpdateRequest struct {
	AccessToken                              string     `json:"accessToken,omitempty"`
	AccessTokenExpiresAt                     int64      `json:"accessTokenExpiresAt,omitempty"`
	Scopes                                   []string   `json:"scopes,omitempty"`
	Properties                               []Property `json:"properties,omitempty"`
	AccessTokenExpiresAtUpdatedOnScopeUpdate bool       `json:"accessTokenExpiresAtUpdatedOnScopeUpdate,omitempty"`
	AccessTokenPersistent                    bool       `json:"accessTokenPersistent,omitempty"`
	AccessTokenHash                          string     `json:"accessTokenHash,omitempty"`
	AccessTokenValueUpdated                  bool       `json:"accessTokenValueUpdated,omitempty"`
}

// TokenUpdateAction is the action of a TokenUpdateResponse.
type TokenUpdateAction string

const (
	TokenUpdateInternalServerError TokenUpdateAction = "INTERNAL_SERVER_ERROR"
	TokenUpdateBadRequest          TokenUpdateAction = "BAD_REQUEST"
	TokenUpdateNotFound            TokenUpdateAction = "NOT_FOUND"
	TokenUpdateOK                  TokenUpdateAction = "OK"
)

// TokenUpdateResponse is the response from /api/auth/token/update.
type TokenUpdateResponse struct {
	APIResponse

	Action               TokenUpdateAction `json:"action,omitempty"`
	AccessToken          string            `json:"accessToken,omitempty"`
	AccessTokenExpiresAt int64             `json:"accessTokenExpiresAt,omitempty"`
	Scopes               []string          `json:"scopes,omitempty"`
	Properties           []Property        `json:"properties,omitempty"`
}
