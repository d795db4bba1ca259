package dto

// PushedAuthReqAction is the action of a PushedAuthReqResponse (RFC 9126).
type PushedAuthReqAction string

const (
	PushedAuthReqCreated             PushedAuthReqAction = "CREATED"
	PushedAuthReqBadRequest          PushedAuthReqAction = "BAD_REQUEST"
	PushedAuthReqUnauthorized        PushedAuthReqAction = "UNAUTHORIZED"
	PushedAuthReqForbidden           PushedAuthReqAction = "FORBIDDEN"
	PushedAuthReqPayloadTooLarge     PushedAuthReqAction = "PAYLOAD_TOO_LARGE"
	PushedAuthReqInternalServerError PushedAuthReqAction = "INTERNAL_SERVER_ERROR"
)

// PushedAuthReqRequest is the request to /api/pushed_auth_req. Parameters is
// the raw form body of the pushed authorization request received from the
// client application; client credentials from the Authorization header go in
// ClientID/ClientSecret.
type PushedAuthReqRequest struct {
	Parameters            string   `json:"parameters,omitempty"`
	ClientID              string   `json:"clientId,omitempty"`
	ClientSecret          string   `json:"clientSecret,omitempty"`
	ClientCertificate     string   `json:"clientCertificate,omitempty"`
	ClientCertificatePath []string `json:"clientCertificatePath,omitempty"`
	DPoP                  string   `json:"dpop,omitempty"`
	Htm                   string   `json:"htm,omitempty"`
	Htu                   string   `json:"htu,omitempty"`
}

// PushedAuthReqResponse is the response from /api/pushed_auth_req.
// RequestURI is the urn:ietf:params:oauth:request_uri:... value to hand back.
type PushedAuthReqResponse struct {
	APIResponse

	Action          PushedAuthReqAction `json:"action,omitempty"`
	ResponseContent string              `json:"responseContent,omitempty"`
	RequestURI      string              `json:"requestUri,omitempty"`
}
