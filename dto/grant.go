package dto

// GrantScope is one entry of a grant: a space-delimited scope string plus the
// resource indicators it was consented for (Grant Management for OAuth 2.0).
type GrantScope struct {
	// Scope is a space-delimited list of scope names.
	Scope string `json:"scope,omitempty"`

	// Resource is the list of resource indicators (RFC 8707) tied to the
	// scopes above.
	Resource []string `json:"resource,omitempty"`
}

// Grant is a bundle of consent recorded by the backend: which scopes, claims
// and authorization details the end-user granted to a client, across
// authorization requests.
type Grant struct {
	Scopes               []GrantScope  `json:"scopes,omitempty"`
	Claims               []string      `json:"claims,omitempty"`
	AuthorizationDetails *AuthzDetails `json:"authorizationDetails,omitempty"`
}

// GMAction is the action of a GMResponse.
type GMAction string

const (
	GMInternalServerError GMAction = "INTERNAL_SERVER_ERROR"
	GMBadRequest          GMAction = "BAD_REQUEST"
	GMUnauthorized        GMAction = "UNAUTHORIZED"
	GMForbidden           GMAction = "FORBIDDEN"
	GMNotFound            GMAction = "NOT_FOUND"
	GMCallerError         GMAction = "CALLER_ERROR"
	GMAuthleteError       GMAction = "AUTHLETE_ERROR"
	GMOK                  GMAction = "OK"
	GMNoContent           GMAction = "NO_CONTENT"
)

// GMRequest is the request to /api/gm: a grant management request (query or
// revoke) received at the caller's grant management endpoint.
type GMRequest struct {
	GMAction          GrantManagementAction `json:"gmAction,omitempty"`
	GrantID           string                `json:"grantId,omitempty"`
	AccessToken       string                `json:"accessToken,omitempty"`
	ClientCertificate string                `json:"clientCertificate,omitempty"`
	DPoP              string                `json:"dpop,omitempty"`
	Htm               string                `json:"htm,omitempty"`
	Htu               string                `json:"htu,omitempty"`
}

// GMResponse is the response from /api/gm.
type GMResponse struct {
	APIResponse

	Action          GMAction `json:"action,omitempty"`
	ResponseContent string   `json:"responseContent,omitempty"`
}
