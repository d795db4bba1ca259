package dto

// Service holds the configuration of an authorization server hosted on the
// Authlete backend. One service corresponds to one issuer.
//
// This is the subset of the wire format the SDK exposes; unknown members are
// simply ignored by encoding/json on the way in and omitted on the way out.
type Service struct {
	// Identidad del servicio dentro de Authlete
	ServiceName  string `json:"serviceName,omitempty"`
	APIKey       int64  `json:"apiKey,omitempty"`
	APISecret    string `json:"apiSecret,omitempty"`
	Description  string `json:"description,omitempty"`
	ServiceOwner int64  `json:"serviceOwnerNumber,omitempty"`
	Number       int64  `json:"number,omitempty"`
	CreatedAt    int64  `json:"createdAt,omitempty"`
	ModifiedAt   int64  `json:"modifiedAt,omitempty"`

	// Issuer / endpoints
	Issuer                            string `json:"issuer,omitempty"`
	AuthorizationEndpoint             string `json:"authorizationEndpoint,omitempty"`
	TokenEndpoint                     string `json:"tokenEndpoint,omitempty"`
	RevocationEndpoint                string `json:"revocationEndpoint,omitempty"`
	UserInfoEndpoint                  string `json:"userInfoEndpoint,omitempty"`
	JwksURI                           string `json:"jwksUri,omitempty"`
	JWKS                              string `json:"jwks,omitempty"`
	RegistrationEndpoint              string `json:"registrationEndpoint,omitempty"`
	PushedAuthReqEndpoint             string `json:"pushedAuthReqEndpoint,omitempty"`
	BackchannelAuthenticationEndpoint string `json:"backchannelAuthenticationEndpoint,omitempty"`
	DeviceAuthorizationEndpoint       string `json:"deviceAuthorizationEndpoint,omitempty"`
	DeviceVerificationURI             string `json:"deviceVerificationUri,omitempty"`
	GrantManagementEndpoint           string `json:"grantManagementEndpoint,omitempty"`

	// Capacidades soportadas
	SupportedGrantTypes           []GrantType        `json:"supportedGrantTypes,omitempty"`
	SupportedResponseTypes        []ResponseType     `json:"supportedResponseTypes,omitempty"`
	SupportedScopes               []Scope            `json:"supportedScopes,omitempty"`
	SupportedTokenAuthMethods     []ClientAuthMethod `json:"supportedTokenAuthMethods,omitempty"`
	SupportedDisplays             []Display          `json:"supportedDisplays,omitempty"`
	SupportedClaimTypes           []string           `json:"supportedClaimTypes,omitempty"`
	SupportedClaims               []string           `json:"supportedClaims,omitempty"`
	SupportedClaimLocales         []string           `json:"supportedClaimLocales,omitempty"`
	SupportedUILocales            []string           `json:"supportedUiLocales,omitempty"`
	SupportedSubjectTypes         []SubjectType      `json:"supportedSubjectTypes,omitempty"`
	SupportedServiceProfiles      []ServiceProfile   `json:"supportedServiceProfiles,omitempty"`
	SupportedAuthzDetailsTypes    []string           `json:"supportedAuthorizationDetailsTypes,omitempty"`
	SupportedCustomClientMetadata []string           `json:"supportedCustomClientMetadata,omitempty"`

	// Tokens
	AccessTokenType               string `json:"accessTokenType,omitempty"`
	AccessTokenDuration           int64  `json:"accessTokenDuration,omitempty"`
	RefreshTokenDuration          int64  `json:"refreshTokenDuration,omitempty"`
	IDTokenDuration               int64  `json:"idTokenDuration,omitempty"`
	AuthorizationResponseDuration int64  `json:"authorizationResponseDuration,omitempty"`
	AccessTokenSignAlg            JWSAlg `json:"accessTokenSignAlg,omitempty"`
	AccessTokenSignatureKeyID     string `json:"accessTokenSignatureKeyId,omitempty"`
	IDTokenSignatureKeyID         string `json:"idTokenSignatureKeyId,omitempty"`
	RefreshTokenKept              bool   `json:"refreshTokenKept,omitempty"`
	RefreshTokenDurationKept      bool   `json:"refreshTokenDurationKept,omitempty"`
	SingleAccessTokenPerSubject   bool   `json:"singleAccessTokenPerSubject,omitempty"`

	// PKCE (RFC 7636)
	PKCERequired     bool `json:"pkceRequired,omitempty"`
	PKCES256Required bool `json:"pkceS256Required,omitempty"`

	// PAR (RFC 9126)
	ParRequired                               bool  `json:"parRequired,omitempty"`
	PushedAuthReqDuration                     int64 `json:"pushedAuthReqDuration,omitempty"`
	RequestObjectRequired                     bool  `json:"requestObjectRequired,omitempty"`
	TraditionalRequestObjectProcessingApplied bool  `json:"traditionalRequestObjectProcessingApplied,omitempty"`

	// CIBA (OpenID Connect Client-Initiated Backchannel Authentication)
	SupportedBackchannelTokenDeliveryModes  []DeliveryMode  `json:"supportedBackchannelTokenDeliveryModes,omitempty"`
	BackchannelAuthReqIDDuration            int64           `json:"backchannelAuthReqIdDuration,omitempty"`
	BackchannelPollingInterval              int             `json:"backchannelPollingInterval,omitempty"`
	BackchannelUserCodeParameterSupported   bool            `json:"backchannelUserCodeParameterSupported,omitempty"`
	BackchannelBindingMessageRequiredInFAPI bool            `json:"backchannelBindingMessageRequiredInFapi,omitempty"`
	UserCodeCharset                         UserCodeCharset `json:"userCodeCharset,omitempty"`
	UserCodeLength                          int             `json:"userCodeLength,omitempty"`

	// Device flow (RFC 8628)
	DeviceFlowCodeDuration    int `json:"deviceFlowCodeDuration,omitempty"`
	DeviceFlowPollingInterval int `json:"deviceFlowPollingInterval,omitempty"`

	// Grant Management for OAuth 2.0
	GrantManagementActionRequired bool `json:"grantManagementActionRequired,omitempty"`

	// Client ID Metadata Documents (draft-ietf-oauth-client-id-metadata-document)
	CimdOptions *CimdOptions `json:"cimdOptions,omitempty"`

	// Varios
	ClientsPerDeveloper                int        `json:"clientsPerDeveloper,omitempty"`
	DirectAuthorizationEndpointEnabled bool       `json:"directAuthorizationEndpointEnabled,omitempty"`
	DirectTokenEndpointEnabled         bool       `json:"directTokenEndpointEnabled,omitempty"`
	DirectRevocationEndpointEnabled    bool       `json:"directRevocationEndpointEnabled,omitempty"`
	DirectUserInfoEndpointEnabled      bool       `json:"directUserInfoEndpointEnabled,omitempty"`
	DirectJwksEndpointEnabled          bool       `json:"directJwksEndpointEnabled,omitempty"`
	DirectIntrospectionEndpointEnabled bool       `json:"directIntrospectionEndpointEnabled,omitempty"`
	MutualTLSValidatePKICertChain      bool       `json:"mutualTlsValidatePkiCertChain,omitempty"`
	TrustedRootCertificates            []string   `json:"trustedRootCertificates,omitempty"`
	MTLSEndpointAliases                []NamedURI `json:"mtlsEndpointAliases,omitempty"`
	Attributes                         []Pair     `json:"attributes,omitempty"`
	TokenExpirationLinked              bool       `json:"tokenExpirationLinked,omitempty"`
	IssSuppressed                      bool       `json:"issSuppressed,omitempty"`
	Metadata                           []Pair     `json:"metadata,omitempty"`
}

// ServiceListResponse is the response from /api/service/get/list.
type ServiceListResponse struct {
	Start      int       `json:"start"`
	End        int       `json:"end"`
	TotalCount int       `json:"totalCount"`
	Services   []Service `json:"services,omitempty"`
}
