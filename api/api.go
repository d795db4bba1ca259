package api

import (
	"context"

	"github.com/dropDatabas3/authlete-go/dto"
)

// Client expone las operaciones del backend de autorización.
//
// Todos los métodos aceptan un context para cancelación/deadline. Los errores
// del backend (status no-2xx) se devuelven como *Error; una respuesta 2xx con
// action de error (BAD_REQUEST, etc.) NO es un error Go: el caller decide
// según el action del response DTO.
type Client interface {
	// Authorization procesa los parámetros de una authorization request.
	Authorization(ctx context.Context, req *dto.AuthorizationRequest) (*dto.AuthorizationResponse, error)

	// AuthorizationIssue emite la respuesta de autorización para el ticket.
	AuthorizationIssue(ctx context.Context, req *dto.AuthorizationIssueRequest) (*dto.AuthorizationIssueResponse, error)

	// AuthorizationFail genera la respuesta de error para el ticket.
	AuthorizationFail(ctx context.Context, req *dto.AuthorizationFailRequest) (*dto.AuthorizationFailResponse, error)

	// Token procesa una token request (todos los grant types soportados).
	Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)

	// TokenIssue emite tokens tras un action PASSWORD del endpoint /auth/token.
	TokenIssue(ctx context.Context, req *dto.TokenIssueRequest) (*dto.TokenIssueResponse, error)

	// TokenFail genera la respuesta de error para el ticket de /auth/token.
	TokenFail(ctx context.Context, req *dto.TokenFailRequest) (*dto.TokenFailResponse, error)

	// TokenCreate crea un access token en forma arbitraria, sin flujo previo.
	TokenCreate(ctx context.Context, req *dto.TokenCreateRequest) (*dto.TokenCreateResponse, error)

	// TokenUpdate modifica scopes/propiedades/expiración de un token existente.
	TokenUpdate(ctx context.Context, req *dto.TokenUpdateRequest) (*dto.TokenUpdateResponse, error)

	// Introspection consulta el estado de un access token. Con el cache de
	// introspección habilitado, resultados recientes se sirven sin red.
	Introspection(ctx context.Context, req *dto.IntrospectionRequest) (*dto.IntrospectionResponse, error)

	// StandardIntrospection genera una respuesta RFC 7662.
	StandardIntrospection(ctx context.Context, req *dto.StandardIntrospectionRequest) (*dto.StandardIntrospectionResponse, error)

	// Revocation procesa una revocation request (RFC 7009).
	Revocation(ctx context.Context, req *dto.RevocationRequest) (*dto.RevocationResponse, error)

	// UserInfo resuelve los claims asociados a un access token.
	UserInfo(ctx context.Context, req *dto.UserInfoRequest) (*dto.UserInfoResponse, error)

	// UserInfoIssue arma la respuesta del userinfo endpoint con los claims dados.
	UserInfoIssue(ctx context.Context, req *dto.UserInfoIssueRequest) (*dto.UserInfoIssueResponse, error)

	// PushAuthorizationRequest registra una pushed authorization request (RFC 9126).
	PushAuthorizationRequest(ctx context.Context, req *dto.PushedAuthReqRequest) (*dto.PushedAuthReqResponse, error)

	// BackchannelAuthentication procesa una backchannel authentication request (CIBA).
	BackchannelAuthentication(ctx context.Context, req *dto.BackchannelAuthenticationRequest) (*dto.BackchannelAuthenticationResponse, error)

	// BackchannelAuthenticationIssue emite el auth_req_id para el ticket.
	BackchannelAuthenticationIssue(ctx context.Context, req *dto.BackchannelAuthenticationIssueRequest) (*dto.BackchannelAuthenticationIssueResponse, error)

	// BackchannelAuthenticationComplete cierra el flujo CIBA con el resultado
	// de la autenticación del usuario.
	BackchannelAuthenticationComplete(ctx context.Context, req *dto.BackchannelAuthenticationCompleteRequest) (*dto.BackchannelAuthenticationCompleteResponse, error)

	// BackchannelAuthenticationFail genera la respuesta de error CIBA.
	BackchannelAuthenticationFail(ctx context.Context, req *dto.BackchannelAuthenticationFailRequest) (*dto.BackchannelAuthenticationFailResponse, error)

	// DeviceAuthorization procesa una device authorization request (RFC 8628).
	DeviceAuthorization(ctx context.Context, req *dto.DeviceAuthorizationRequest) (*dto.DeviceAuthorizationResponse, error)

	// DeviceComplete cierra el flujo device tras la decisión del usuario.
	DeviceComplete(ctx context.Context, req *dto.DeviceCompleteRequest) (*dto.DeviceCompleteResponse, error)

	// DeviceVerification resuelve el user code mostrado en la verification page.
	DeviceVerification(ctx context.Context, req *dto.DeviceVerificationRequest) (*dto.DeviceVerificationResponse, error)

	// GrantManagement procesa una grant management request (query/revoke).
	GrantManagement(ctx context.Context, req *dto.GMRequest) (*dto.GMResponse, error)

	// ServiceGet obtiene un servicio por API key. Usa credenciales de owner.
	ServiceGet(ctx context.Context, apiKey int64) (*dto.Service, error)

	// ServiceList pagina los servicios del owner. start/end son índices
	// half-open sobre la lista completa.
	ServiceList(ctx context.Context, start, end int) (*dto.ServiceListResponse, error)

	// ServiceCreate registra un servicio nuevo.
	ServiceCreate(ctx context.Context, service *dto.Service) (*dto.Service, error)

	// ServiceUpdate reemplaza la configuración del servicio.
	ServiceUpdate(ctx context.Context, apiKey int64, service *dto.Service) (*dto.Service, error)

	// ServiceDelete elimina el servicio.
	ServiceDelete(ctx context.Context, apiKey int64) error

	// ClientGet obtiene un cliente registrado por su ID numérico.
	ClientGet(ctx context.Context, clientID int64) (*dto.Client, error)

	// ClientList pagina los clientes del servicio. developer vacío lista todos.
	ClientList(ctx context.Context, developer string, start, end int) (*dto.ClientListResponse, error)

	// ClientCreate registra un cliente nuevo en el servicio.
	ClientCreate(ctx context.Context, client *dto.Client) (*dto.Client, error)

	// ClientUpdate reemplaza la configuración del cliente.
	ClientUpdate(ctx context.Context, client *dto.Client) (*dto.Client, error)

	// ClientDelete elimina el cliente.
	ClientDelete(ctx context.Context, clientID int64) error

	// Close libera recursos (cache, conexiones idle).
	Close() error
}
