package dto

import "strings"

// Wire-format enums. Authlete serializes these as plain strings, so they are
// string types with constants rather than integer enums.

// GrantType is a value of the grant_type parameter (RFC 6749 and extensions).
type GrantType string

const (
	GrantAuthorizationCode GrantType = "AUTHORIZATION_CODE"
	GrantImplicit          GrantType = "IMPLICIT"
	GrantPassword          GrantType = "PASSWORD"
	GrantClientCredentials GrantType = "CLIENT_CREDENTIALS"
	GrantRefreshToken      GrantType = "REFRESH_TOKEN"
	GrantCIBA              GrantType = "CIBA"
	GrantDeviceCode        GrantType = "DEVICE_CODE"
	GrantTokenExchange     GrantType = "TOKEN_EXCHANGE"
	GrantJWTBearer         GrantType = "JWT_BEARER"
)

func (g GrantType) String() string { return string(g) }

// URN returns the grant_type value used on the OAuth wire, which differs from
// the Authlete enum name for the urn-based grants.
func (g GrantType) URN() string {
	switch g {
	case GrantAuthorizationCode:
		return "authorization_code"
	case GrantImplicit:
		return "implicit"
	case GrantPassword:
		return "password"
	case GrantClientCredentials:
		return "client_credentials"
	case GrantRefreshToken:
		return "refresh_token"
	case GrantCIBA:
		return "urn:openid:params:grant-type:ciba"
	case GrantDeviceCode:
		return "urn:ietf:params:oauth:grant-type:device_code"
	case GrantTokenExchange:
		return "urn:ietf:params:oauth:grant-type:token-exchange"
	case GrantJWTBearer:
		return "urn:ietf:params:oauth:grant-type:jwt-bearer"
	}
	return ""
}

// ResponseType is a value of the response_type parameter
// (OAuth 2.0 Multiple Response Type Encoding Practices).
type ResponseType string

const (
	ResponseNone             ResponseType = "NONE"
	ResponseCode             ResponseType = "CODE"
	ResponseToken            ResponseType = "TOKEN"
	ResponseIDToken          ResponseType = "ID_TOKEN"
	ResponseCodeToken        ResponseType = "CODE_TOKEN"
	ResponseCodeIDToken      ResponseType = "CODE_ID_TOKEN"
	ResponseIDTokenToken     ResponseType = "ID_TOKEN_TOKEN"
	ResponseCodeIDTokenToken ResponseType = "CODE_ID_TOKEN_TOKEN"
)

func (r ResponseType) String() string { return string(r) }

// ClientType distinguishes confidential and public clients (RFC 6749, 2.1).
type ClientType string

const (
	ClientTypePublic       ClientType = "PUBLIC"
	ClientTypeConfidential ClientType = "CONFIDENTIAL"
)

// ClientAuthMethod is a client authentication method at the token endpoint
// (OIDC Core, 9. Client Authentication).
type ClientAuthMethod string

const (
	AuthNone              ClientAuthMethod = "NONE"
	AuthClientSecretBasic ClientAuthMethod = "CLIENT_SECRET_BASIC"
	AuthClientSecretPost  ClientAuthMethod = "CLIENT_SECRET_POST"
	AuthClientSecretJWT   ClientAuthMethod = "CLIENT_SECRET_JWT"
	AuthPrivateKeyJWT     ClientAuthMethod = "PRIVATE_KEY_JWT"
	AuthTLSClientAuth     ClientAuthMethod = "TLS_CLIENT_AUTH"
	AuthSelfSignedTLS     ClientAuthMethod = "SELF_SIGNED_TLS_CLIENT_AUTH"
)

// SubjectType is a subject identifier type (OIDC Core, 8).
type SubjectType string

const (
	SubjectPublic   SubjectType = "PUBLIC"
	SubjectPairwise SubjectType = "PAIRWISE"
)

// Display is a value of the display request parameter (OIDC Core, 3.1.2.1).
type Display string

const (
	DisplayPage  Display = "PAGE"
	DisplayPopup Display = "POPUP"
	DisplayTouch Display = "TOUCH"
	DisplayWap   Display = "WAP"
)

// Prompt is a value of the prompt request parameter (OIDC Core, 3.1.2.1).
type Prompt string

const (
	PromptNone          Prompt = "NONE"
	PromptLogin         Prompt = "LOGIN"
	PromptConsent       Prompt = "CONSENT"
	PromptSelectAccount Prompt = "SELECT_ACCOUNT"
	PromptCreate        Prompt = "CREATE"
)

// CodeChallengeMethod is a PKCE transformation method (RFC 7636).
type CodeChallengeMethod string

const (
	CodeChallengePlain CodeChallengeMethod = "PLAIN"
	CodeChallengeS256  CodeChallengeMethod = "S256"
)

// DeliveryMode is a CIBA token delivery mode.
type DeliveryMode string

const (
	DeliveryPoll DeliveryMode = "POLL"
	DeliveryPing DeliveryMode = "PING"
	DeliveryPush DeliveryMode = "PUSH"
)

// UserCodeCharset is the character set for CIBA user codes.
type UserCodeCharset string

const (
	UserCodeBase20  UserCodeCharset = "BASE20"
	UserCodeNumeric UserCodeCharset = "NUMERIC"
)

// JWSAlg is a JSON Web Signature algorithm (RFC 7518).
type JWSAlg string

const (
	JWSNone  JWSAlg = "NONE"
	JWSHS256 JWSAlg = "HS256"
	JWSHS384 JWSAlg = "HS384"
	JWSHS512 JWSAlg = "HS512"
	JWSRS256 JWSAlg = "RS256"
	JWSRS384 JWSAlg = "RS384"
	JWSRS512 JWSAlg = "RS512"
	JWSES256 JWSAlg = "ES256"
	JWSES384 JWSAlg = "ES384"
	JWSES512 JWSAlg = "ES512"
	JWSPS256 JWSAlg = "PS256"
	JWSPS384 JWSAlg = "PS384"
	JWSPS512 JWSAlg = "PS512"
	JWSEdDSA JWSAlg = "EdDSA"
)

// ServiceProfile is a profile a service conforms to.
type ServiceProfile string

const (
	ProfileFAPI ServiceProfile = "FAPI"
	ProfileOB   ServiceProfile = "OPEN_BANKING"
)

// ApplicationType is the application_type client metadata (OIDC DynReg, 2).
type ApplicationType string

const (
	ApplicationWeb    ApplicationType = "WEB"
	ApplicationNative ApplicationType = "NATIVE"
)

// GrantManagementAction is a grant management action
// (OAuth 2.0 Grant Management for OAuth 2.0, FAPI).
type GrantManagementAction string

const (
	GMActionCreate  GrantManagementAction = "CREATE"
	GMActionQuery   GrantManagementAction = "QUERY"
	GMActionUpdate  GrantManagementAction = "UPDATE"
	GMActionReplace GrantManagementAction = "REPLACE"
	GMActionRevoke  GrantManagementAction = "REVOKE"
	GMActionMerge   GrantManagementAction = "MERGE"
)

// TokenType is a token type identifier (RFC 8693, 3).
type TokenType string

const (
	TokenTypeAccessToken  TokenType = "urn:ietf:params:oauth:token-type:access_token"
	TokenTypeRefreshToken TokenType = "urn:ietf:params:oauth:token-type:refresh_token"
	TokenTypeIDToken      TokenType = "urn:ietf:params:oauth:token-type:id_token"
	TokenTypeJWT          TokenType = "urn:ietf:params:oauth:token-type:jwt"
)

// ParseGrantType maps either the enum name or the wire value ("refresh_token",
// urn grants included) to a GrantType. Returns "" when unknown.
func ParseGrantType(s string) GrantType {
	all := []GrantType{
		GrantAuthorizationCode, GrantImplicit, GrantPassword,
		GrantClientCredentials, GrantRefreshToken, GrantCIBA,
		GrantDeviceCode, GrantTokenExchange, GrantJWTBearer,
	}
	for _, g := range all {
		if strings.EqualFold(s, string(g)) || s == g.URN() {
			return g
		}
	}
	return ""
}

// ParsePrompt maps a prompt wire value ("login") or enum name to a Prompt.
func ParsePrompt(s string) Prompt {
	for _, p := range []Prompt{PromptNone, PromptLogin, PromptConsent, PromptSelectAccount, PromptCreate} {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return ""
}
