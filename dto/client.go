package dto

// Client holds the metadata of a client application registered on a service.
// Field names follow OIDC Dynamic Client Registration metadata, camelCased
// the way the backend serializes them.
type Client struct {
	// Identidad dentro de Authlete
	Number               int64  `json:"number,omitempty"`
	ServiceNumber        int64  `json:"serviceNumber,omitempty"`
	Developer            string `json:"developer,omitempty"`
	ClientID             int64  `json:"clientId,omitempty"`
	ClientIDAlias        string `json:"clientIdAlias,omitempty"`
	ClientIDAliasEnabled bool   `json:"clientIdAliasEnabled,omitempty"`
	ClientSecret         string `json:"clientSecret,omitempty"`
	CreatedAt            int64  `json:"createdAt,omitempty"`
	ModifiedAt           int64  `json:"modifiedAt,omitempty"`

	// Metadata básica
	ClientType      ClientType      `json:"clientType,omitempty"`
	ClientName      string          `json:"clientName,omitempty"`
	ClientNames     []TaggedValue   `json:"clientNames,omitempty"`
	ApplicationType ApplicationType `json:"applicationType,omitempty"`
	LogoURI         string          `json:"logoUri,omitempty"`
	LogoURIs        []TaggedValue   `json:"logoUris,omitempty"`
	ClientURI       string          `json:"clientUri,omitempty"`
	ClientURIs      []TaggedValue   `json:"clientUris,omitempty"`
	PolicyURI       string          `json:"policyUri,omitempty"`
	TosURI          string          `json:"tosUri,omitempty"`
	Contacts        []string        `json:"contacts,omitempty"`

	// Flujos
	RedirectURIs  []string       `json:"redirectUris,omitempty"`
	ResponseTypes []ResponseType `json:"responseTypes,omitempty"`
	GrantTypes    []GrantType    `json:"grantTypes,omitempty"`

	// Autenticación del cliente
	TokenAuthMethod                       ClientAuthMethod `json:"tokenAuthMethod,omitempty"`
	TokenAuthSignAlg                      JWSAlg           `json:"tokenAuthSignAlg,omitempty"`
	SelfSignedCertificateKeyID            string           `json:"selfSignedCertificateKeyId,omitempty"`
	TLSClientAuthSubjectDN                string           `json:"tlsClientAuthSubjectDn,omitempty"`
	TLSClientCertificateBoundAccessTokens bool             `json:"tlsClientCertificateBoundAccessTokens,omitempty"`

	// JOSE
	JwksURI         string   `json:"jwksUri,omitempty"`
	JWKS            string   `json:"jwks,omitempty"`
	IDTokenSignAlg  JWSAlg   `json:"idTokenSignAlg,omitempty"`
	UserInfoSignAlg JWSAlg   `json:"userInfoSignAlg,omitempty"`
	RequestSignAlg  JWSAlg   `json:"requestSignAlg,omitempty"`
	RequestURIs     []string `json:"requestUris,omitempty"`

	// OIDC
	SubjectType         SubjectType `json:"subjectType,omitempty"`
	SectorIdentifierURI string      `json:"sectorIdentifierUri,omitempty"`
	DefaultMaxAge       int         `json:"defaultMaxAge,omitempty"`
	DefaultACRs         []string    `json:"defaultAcrs,omitempty"`
	AuthTimeRequired    bool        `json:"authTimeRequired,omitempty"`
	LoginURI            string      `json:"loginUri,omitempty"`

	// CIBA
	BcDeliveryMode         DeliveryMode `json:"bcDeliveryMode,omitempty"`
	BcNotificationEndpoint string       `json:"bcNotificationEndpoint,omitempty"`
	BcRequestSignAlg       JWSAlg       `json:"bcRequestSignAlg,omitempty"`
	BcUserCodeRequired     bool         `json:"bcUserCodeRequired,omitempty"`

	// PAR
	ParRequired           bool `json:"parRequired,omitempty"`
	RequestObjectRequired bool `json:"requestObjectRequired,omitempty"`

	// Varios
	AuthorizationDetailsTypes []string         `json:"authorizationDetailsTypes,omitempty"`
	Attributes                []Pair           `json:"attributes,omitempty"`
	Extension                 *ClientExtension `json:"extension,omitempty"`
	Description               string           `json:"description,omitempty"`
	Descriptions              []TaggedValue    `json:"descriptions,omitempty"`
}

// ClientExtension holds extra per-client settings not covered by the standard
// client metadata.
type ClientExtension struct {
	RequestableScopesEnabled bool     `json:"requestableScopesEnabled,omitempty"`
	RequestableScopes        []string `json:"requestableScopes,omitempty"`
	AccessTokenDuration      int64    `json:"accessTokenDuration,omitempty"`
	RefreshTokenDuration     int64    `json:"refreshTokenDuration,omitempty"`
	TokenExchangePermitted   bool     `json:"tokenExchangePermitted,omitempty"`
}

// ClientListResponse is the response from /api/client/get/list.
type ClientListResponse struct {
	Start      int      `json:"start"`
	End        int      `json:"end"`
	TotalCount int      `json:"totalCount"`
	Developer  string   `json:"developer,omitempty"`
	Clients    []Client `json:"clients,omitempty"`
}
