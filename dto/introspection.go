package dto

import (
	"fmt"
	"time"
)

// IntrospectionAction tells the caller of /api/auth/introspection how to
// respond to its own caller (the protected resource request).
type IntrospectionAction string

const (
	IntrospectionInternalServerError IntrospectionAction = "INTERNAL_SERVER_ERROR"
	IntrospectionBadRequest          IntrospectionAction = "BAD_REQUEST"
	IntrospectionUnauthorized        IntrospectionAction = "UNAUTHORIZED"
	IntrospectionForbidden           IntrospectionAction = "FORBIDDEN"
	IntrospectionOK                  IntrospectionAction = "OK"
)

// IntrospectionRequest is the request to /api/auth/introspection.
type IntrospectionRequest struct {
	Token             string                `json:"token,omitempty"`
	Scopes            []string              `json:"scopes,omitempty"`
	Subject           string                `json:"subject,omitempty"`
	ClientCertificate string                `json:"clientCertificate,omitempty"`
	DPoP              string                `json:"dpop,omitempty"`
	Htm               string                `json:"htm,omitempty"`
	Htu               string                `json:"htu,omitempty"`
	Resources         []string              `json:"resources,omitempty"`
	GMAction          GrantManagementAction `json:"gmAction,omitempty"`
	GrantID           string                `json:"grantId,omitempty"`
}

// IntrospectionResponse is the response from /api/auth/introspection.
type IntrospectionResponse struct {
	APIResponse

	Action            IntrospectionAction `json:"action,omitempty"`
	ClientID          int64               `json:"clientId,omitempty"`
	ClientIDAlias     string              `json:"clientIdAlias,omitempty"`
	ClientIDAliasUsed bool                `json:"clientIdAliasUsed,omitempty"`
	Subject           string              `json:"subject,omitempty"`
	Scopes            []string            `json:"scopes,omitempty"`
	ScopeDetails      []Scope             `json:"scopeDetails,omitempty"`

	// Los cuatro booleanos que resumen el estado del token
	Existent    bool `json:"existent,omitempty"`
	Usable      bool `json:"usable,omitempty"`
	Sufficient  bool `json:"sufficient,omitempty"`
	Refreshable bool `json:"refreshable,omitempty"`

	ResponseContent       string        `json:"responseContent,omitempty"`
	ExpiresAt             int64         `json:"expiresAt,omitempty"`
	Properties            []Property    `json:"properties,omitempty"`
	CertificateThumbprint string        `json:"certificateThumbprint,omitempty"`
	Resources             []string      `json:"resources,omitempty"`
	AccessTokenResources  []string      `json:"accessTokenResources,omitempty"`
	AuthorizationDetails  *AuthzDetails `json:"authorizationDetails,omitempty"`
	GrantID               string        `json:"grantId,omitempty"`
	Grant                 *Grant        `json:"grant,omitempty"`
	ConsentedClaims       []string      `json:"consentedClaims,omitempty"`
	ServiceAttributes     []Pair        `json:"serviceAttributes,omitempty"`
	ClientAttributes      []Pair        `json:"clientAttributes,omitempty"`
	ForExternalAttachment bool          `json:"forExternalAttachment,omitempty"`
}

// Summarize renders the response on one line for logging.
func (r *IntrospectionResponse) Summarize() string {
	exp := ""
	if r.ExpiresAt > 0 {
		exp = time.UnixMilli(r.ExpiresAt).UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"action=%s, clientId=%d, subject=%s, scopes=%v, existent=%t, usable=%t, sufficient=%t, refreshable=%t, expiresAt=%s",
		r.Action, r.ClientID, r.Subject, r.Scopes,
		r.Existent, r.Usable, r.Sufficient, r.Refreshable, exp,
	)
}

// StandardIntrospectionAction is the action of a
// StandardIntrospectionResponse (RFC 7662 introspection rendered by Authlete).
type StandardIntrospectionAction string

const (
	StandardIntrospectionInternalServerError StandardIntrospectionAction = "INTERNAL_SERVER_ERROR"
	StandardIntrospectionBadRequest          StandardIntrospectionAction = "BAD_REQUEST"
	StandardIntrospectionOK                  StandardIntrospectionAction = "OK"
)

// StandardIntrospectionRequest is the request to
// /api/auth/introspection/standard. Parameters is the raw form body the
// caller's RFC 7662 introspection endpoint received.
type StandardIntrospectionRequest struct {
	Parameters           string `json:"parameters,omitempty"`
	WithHiddenProperties bool   `json:"withHiddenProperties,omitempty"`
}

// StandardIntrospectionResponse is the response from
// /api/auth/introspection/standard. ResponseContent is the RFC 7662 JSON to
// return as-is.
type StandardIntrospectionResponse struct {
	APIResponse

	Action          StandardIntrospectionAction `json:"action,omitempty"`
	ResponseContent string                      `json:"responseContent,omitempty"`
}
