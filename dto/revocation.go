package dto

// RevocationAction is the action of a RevocationResponse (RFC 7009).
type RevocationAction string

const (
	RevocationInternalServerError RevocationAction = "INTERNAL_SERVER_ERROR"
	RevocationInvalidClient       RevocationAction = "INVALID_CLIENT"
	RevocationBadRequest          RevocationAction = "BAD_REQUEST"
	RevocationOK                  RevocationAction = "OK"
)

// RevocationRequest is the request to /api/auth/revocation. Parameters is the
// raw form body of the RFC 7009 revocation request.
type RevocationRequest struct {
	Parameters            string   `json:"parameters,omitempty"`
	ClientID              string   `json:"clientId,omitempty"`
	ClientSecret          string   `json:"clientSecret,omitempty"`
	ClientCertificate     string   `json:"clientCertificate,omitempty"`
	ClientCertificatePath []string `json:"clientCertificatePath,omitempty"`
}

// RevocationResponse is the response from /api/auth/revocation.
type RevocationResponse struct {
	APIResponse

	Action          RevocationAction `json:"action,omitempty"`
	ResponseContent string           `json:"responseContent,omitempty"`
}
