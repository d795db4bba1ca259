package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/authlete-go/conf"
	"github.com/dropDatabas3/authlete-go/dto"
	"github.com/dropDatabas3/authlete-go/internal/cache"
	"github.com/dropDatabas3/authlete-go/internal/observability/logger"
)

// Rutas del backend. Los endpoints de auth usan credenciales del servicio;
// los de /service/* usan las del service owner.
const (
	pathAuthorization      = "/api/auth/authorization"
	pathAuthorizationIssue = "/api/auth/authorization/issue"
	pathAuthorizationFail  = "/api/auth/authorization/fail"
	pathToken              = "/api/auth/token"
	pathTokenIssue         = "/api/auth/token/issue"
	pathTokenFail          = "/api/auth/token/fail"
	pathTokenCreate        = "/api/auth/token/create"
	pathTokenUpdate        = "/api/auth/token/update"
	pathIntrospection      = "/api/auth/introspection"
	pathIntrospectionStd   = "/api/auth/introspection/standard"
	pathRevocation         = "/api/auth/revocation"
	pathUserInfo           = "/api/auth/userinfo"
	pathUserInfoIssue      = "/api/auth/userinfo/issue"
	pathPushedAuthReq      = "/api/pushed_auth_req"
	pathBCAuth             = "/api/backchannel/authentication"
	pathBCAuthIssue        = "/api/backchannel/authentication/issue"
	pathBCAuthComplete     = "/api/backchannel/authentication/complete"
	pathBCAuthFail         = "/api/backchannel/authentication/fail"
	pathDeviceAuth         = "/api/device/authorization"
	pathDeviceComplete     = "/api/device/complete"
	pathDeviceVerification = "/api/device/verification"
	pathGM                 = "/api/gm"
	pathServiceGet         = "/api/service/get/"
	pathServiceList        = "/api/service/get/list"
	pathServiceCreate      = "/api/service/create"
	pathServiceUpdate      = "/api/service/update/"
	pathServiceDelete      = "/api/service/delete/"
	pathClientGet          = "/api/client/get/"
	pathClientList         = "/api/client/get/list"
	pathClientCreate       = "/api/client/create"
	pathClientUpdate       = "/api/client/update/"
	pathClientDelete       = "/api/client/delete/"
)

type credKind int

const (
	credService credKind = iota
	credServiceOwner
)

type clientImpl struct {
	cfg   *conf.Configuration
	http  *http.Client
	log   *zap.Logger
	cache cache.Client
	sf    singleflight.Group
}

// Option ajusta la construcción del cliente.
type Option func(*clientImpl)

// WithHTTPClient reemplaza el *http.Client interno (tests, proxies).
func WithHTTPClient(h *http.Client) Option {
	return func(c *clientImpl) { c.http = h }
}

// WithLogger reemplaza el logger del cliente.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientImpl) { c.log = l }
}

// WithCache inyecta un cache ya construido (ignora cfg.Cache).
func WithCache(cc cache.Client) Option {
	return func(c *clientImpl) { c.cache = cc }
}

// New construye un Client a partir de la configuración.
func New(cfg *conf.Configuration, opts ...Option) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("api: configuración nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &clientImpl{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.Named("api"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cache == nil && cfg.Cache.Enabled {
		cc, err := cache.New(cache.Config{
			Driver:     cfg.Cache.Driver,
			Addr:       cfg.Cache.Addr,
			Password:   cfg.Cache.Password,
			DB:         cfg.Cache.DB,
			Prefix:     cfg.Cache.Prefix,
			DefaultTTL: cfg.Cache.IntrospectionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("api: cache: %w", err)
		}
		c.cache = cc
	}

	if cfg.Metrics.Enabled {
		if err := RegisterMetrics(nil); err != nil {
			return nil, fmt.Errorf("api: metrics: %w", err)
		}
	}

	c.log.Debug("api client configured",
		logger.String("base_url", cfg.BaseURL),
		logger.ServiceAPIKey(cfg.ServiceAPIKey),
	)
	return c, nil
}

func (c *clientImpl) Close() error {
	c.http.CloseIdleConnections()
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// call ejecuta una llamada JSON contra el backend con retry. body nil => sin
// cuerpo; out nil => se descarta la respuesta.
func (c *clientImpl) call(ctx context.Context, op, method, path string, creds credKind, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = b
	}

	requestID := uuid.NewString()
	log := c.log.With(
		logger.Component("api"),
		logger.Op(op),
		logger.RequestID(requestID),
		logger.Method(method),
		logger.Path(path),
	)
	// El logger "scoped" viaja en el contexto para que los pasos internos
	// (doOnce, cache) logueen con los mismos campos.
	ctx = logger.ToContext(ctx, log)

	inflightInc(op)
	start := time.Now()
	defer inflightDec(op)

	operation := func() (int, error) {
		status, err := c.doOnce(ctx, op, method, path, creds, payload, requestID, out)
		if err != nil {
			if ae, ok := AsError(err); ok && ae.Status > 0 && ae.Status < 500 {
				// 4xx no se reintenta
				return status, backoff.Permanent(err)
			}
			return status, err
		}
		return status, nil
	}

	attempts := c.cfg.Retry.MaxAttempts
	if c.cfg.Retry.Disabled || attempts < 1 {
		attempts = 1
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond

	attempt := 1
	status, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			recordRetry(op)
			attempt++
			log.Warn("retrying backend call",
				logger.Attempt(attempt),
				logger.Err(err),
				logger.Duration(next),
			)
		}),
	)

	elapsed := time.Since(start)
	recordRequest(op, status, elapsed)

	if err != nil {
		log.Error("backend call failed",
			logger.Status(status),
			logger.Duration(elapsed),
			logger.Err(err),
		)
		return err
	}
	log.Debug("backend call ok",
		logger.Status(status),
		logger.Duration(elapsed),
	)
	return nil
}

// doOnce ejecuta un único intento HTTP.
func (c *clientImpl) doOnce(ctx context.Context, op, method, path string, creds credKind, payload []byte, requestID string, out any) (int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return 0, &Error{Op: op, RequestID: requestID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}
	switch creds {
	case credServiceOwner:
		req.SetBasicAuth(c.cfg.ServiceOwnerAPIKey, c.cfg.ServiceOwnerAPISecret)
	default:
		req.SetBasicAuth(c.cfg.ServiceAPIKey, c.cfg.ServiceAPISecret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &Error{Op: op, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()
	logger.From(ctx).Debug("backend response", logger.Status(resp.StatusCode))

	if resp.StatusCode/100 != 2 {
		// El backend suele incluir resultCode/resultMessage también en errores.
		var apiResp dto.APIResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		_ = json.Unmarshal(raw, &apiResp)
		return resp.StatusCode, &Error{
			Op:            op,
			Status:        resp.StatusCode,
			ResultCode:    apiResp.ResultCode,
			ResultMessage: apiResp.ResultMessage,
			RequestID:     requestID,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, &Error{Op: op, Status: resp.StatusCode, RequestID: requestID, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return resp.StatusCode, nil
}

func (c *clientImpl) Authorization(ctx context.Context, req *dto.AuthorizationRequest) (*dto.AuthorizationResponse, error) {
	var out dto.AuthorizationResponse
	if err := c.call(ctx, "Authorization", http.MethodPost, pathAuthorization, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) AuthorizationIssue(ctx context.Context, req *dto.AuthorizationIssueRequest) (*dto.AuthorizationIssueResponse, error) {
	var out dto.AuthorizationIssueResponse
	if err := c.call(ctx, "AuthorizationIssue", http.MethodPost, pathAuthorizationIssue, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) AuthorizationFail(ctx context.Context, req *dto.AuthorizationFailRequest) (*dto.AuthorizationFailResponse, error) {
	var out dto.AuthorizationFailResponse
	if err := c.call(ctx, "AuthorizationFail", http.MethodPost, pathAuthorizationFail, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.call(ctx, "Token", http.MethodPost, pathToken, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) TokenIssue(ctx context.Context, req *dto.TokenIssueRequest) (*dto.TokenIssueResponse, error) {
	var out dto.TokenIssueResponse
	if err := c.call(ctx, "TokenIssue", http.MethodPost, pathTokenIssue, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) TokenFail(ctx context.Context, req *dto.TokenFailRequest) (*dto.TokenFailResponse, error) {
	var out dto.TokenFailResponse
	if err := c.call(ctx, "TokenFail", http.MethodPost, pathTokenFail, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) TokenCreate(ctx context.Context, req *dto.TokenCreateRequest) (*dto.TokenCreateResponse, error) {
	var out dto.TokenCreateResponse
	if err := c.call(ctx, "TokenCreate", http.MethodPost, pathTokenCreate, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) TokenUpdate(ctx context.Context, req *dto.TokenUpdateRequest) (*dto.TokenUpdateResponse, error) {
	var out dto.TokenUpdateResponse
	if err := c.call(ctx, "TokenUpdate", http.MethodPost, pathTokenUpdate, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// introspectionKey arma la key de cache. El token nunca va en claro: se usa
// su hash, más los parámetros que alteran el resultado.
func introspectionKey(req *dto.IntrospectionRequest) string {
	h := sha256.New()
	h.Write([]byte(req.Token))
	for _, s := range req.Scopes {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	h.Write([]byte{0})
	h.Write([]byte(req.Subject))
	return "introspection:" + hex.EncodeToString(h.Sum(nil))
}

func (c *clientImpl) Introspection(ctx context.Context, req *dto.IntrospectionRequest) (*dto.IntrospectionResponse, error) {
	if c.cache == nil {
		return c.introspectRemote(ctx, req)
	}

	key := introspectionKey(req)
	log := logger.FromWithFields(ctx,
		logger.Op("Introspection"),
		logger.Key(key),
		logger.Token(req.Token),
	)
	if raw, err := c.cache.Get(ctx, key); err == nil {
		var out dto.IntrospectionResponse
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			recordCache("hit")
			return &out, nil
		}
		// Entrada corrupta: se descarta y se consulta el backend.
		_ = c.cache.Delete(ctx, key)
	} else if !cache.IsNotFound(err) {
		log.Warn("introspection cache get failed", logger.Err(err))
	}
	recordCache("miss")

	// singleflight evita que N requests concurrentes por el mismo token
	// disparen N llamadas al backend.
	v, err, _ := c.sf.Do(key, func() (any, error) {
		out, err := c.introspectRemote(ctx, req)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(out); err == nil {
			if err := c.cache.Set(ctx, key, string(raw), c.cfg.Cache.IntrospectionTTL); err != nil {
				log.Warn("introspection cache set failed", logger.Err(err))
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.IntrospectionResponse), nil
}

func (c *clientImpl) introspectRemote(ctx context.Context, req *dto.IntrospectionRequest) (*dto.IntrospectionResponse, error) {
	var out dto.IntrospectionResponse
	if err := c.call(ctx, "Introspection", http.MethodPost, pathIntrospection, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) StandardIntrospection(ctx context.Context, req *dto.StandardIntrospectionRequest) (*dto.StandardIntrospectionResponse, error) {
	var out dto.StandardIntrospectionResponse
	if err := c.call(ctx, "StandardIntrospection", http.MethodPost, pathIntrospectionStd, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) Revocation(ctx context.Context, req *dto.RevocationRequest) (*dto.RevocationResponse, error) {
	var out dto.RevocationResponse
	if err := c.call(ctx, "Revocation", http.MethodPost, pathRevocation, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) UserInfo(ctx context.Context, req *dto.UserInfoRequest) (*dto.UserInfoResponse, error) {
	var out dto.UserInfoResponse
	if err := c.call(ctx, "UserInfo", http.MethodPost, pathUserInfo, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) UserInfoIssue(ctx context.Context, req *dto.UserInfoIssueRequest) (*dto.UserInfoIssueResponse, error) {
	var out dto.UserInfoIssueResponse
	if err := c.call(ctx, "UserInfoIssue", http.MethodPost, pathUserInfoIssue, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) PushAuthorizationRequest(ctx context.Context, req *dto.PushedAuthReqRequest) (*dto.PushedAuthReqResponse, error) {
	var out dto.PushedAuthReqResponse
	if err := c.call(ctx, "PushAuthorizationRequest", http.MethodPost, pathPushedAuthReq, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) BackchannelAuthentication(ctx context.Context, req *dto.BackchannelAuthenticationRequest) (*dto.BackchannelAuthenticationResponse, error) {
	var out dto.BackchannelAuthenticationResponse
	if err := c.call(ctx, "BackchannelAuthentication", http.MethodPost, pathBCAuth, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) BackchannelAuthenticationIssue(ctx context.Context, req *dto.BackchannelAuthenticationIssueRequest) (*dto.BackchannelAuthenticationIssueResponse, error) {
	var out dto.BackchannelAuthenticationIssueResponse
	if err := c.call(ctx, "BackchannelAuthenticationIssue", http.MethodPost, pathBCAuthIssue, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) BackchannelAuthenticationComplete(ctx context.Context, req *dto.BackchannelAuthenticationCompleteRequest) (*dto.BackchannelAuthenticationCompleteResponse, error) {
	var out dto.BackchannelAuthenticationCompleteResponse
	if err := c.call(ctx, "BackchannelAuthenticationComplete", http.MethodPost, pathBCAuthComplete, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) BackchannelAuthenticationFail(ctx context.Context, req *dto.BackchannelAuthenticationFailRequest) (*dto.BackchannelAuthenticationFailResponse, error) {
	var out dto.BackchannelAuthenticationFailResponse
	if err := c.call(ctx, "BackchannelAuthenticationFail", http.MethodPost, pathBCAuthFail, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) DeviceAuthorization(ctx context.Context, req *dto.DeviceAuthorizationRequest) (*dto.DeviceAuthorizationResponse, error) {
	var out dto.DeviceAuthorizationResponse
	if err := c.call(ctx, "DeviceAuthorization", http.MethodPost, pathDeviceAuth, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) DeviceComplete(ctx context.Context, req *dto.DeviceCompleteRequest) (*dto.DeviceCompleteResponse, error) {
	var out dto.DeviceCompleteResponse
	if err := c.call(ctx, "DeviceComplete", http.MethodPost, pathDeviceComplete, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) DeviceVerification(ctx context.Context, req *dto.DeviceVerificationRequest) (*dto.DeviceVerificationResponse, error) {
	var out dto.DeviceVerificationResponse
	if err := c.call(ctx, "DeviceVerification", http.MethodPost, pathDeviceVerification, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) GrantManagement(ctx context.Context, req *dto.GMRequest) (*dto.GMResponse, error) {
	var out dto.GMResponse
	if err := c.call(ctx, "GrantManagement", http.MethodPost, pathGM, credService, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ServiceGet(ctx context.Context, apiKey int64) (*dto.Service, error) {
	var out dto.Service
	path := pathServiceGet + strconv.FormatInt(apiKey, 10)
	if err := c.call(ctx, "ServiceGet", http.MethodGet, path, credServiceOwner, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ServiceList(ctx context.Context, start, end int) (*dto.ServiceListResponse, error) {
	var out dto.ServiceListResponse
	path := pathServiceList + "?" + rangeQuery(start, end)
	if err := c.call(ctx, "ServiceList", http.MethodGet, path, credServiceOwner, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ServiceCreate(ctx context.Context, service *dto.Service) (*dto.Service, error) {
	var out dto.Service
	if err := c.call(ctx, "ServiceCreate", http.MethodPost, pathServiceCreate, credServiceOwner, service, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ServiceUpdate(ctx context.Context, apiKey int64, service *dto.Service) (*dto.Service, error) {
	var out dto.Service
	path := pathServiceUpdate + strconv.FormatInt(apiKey, 10)
	if err := c.call(ctx, "ServiceUpdate", http.MethodPost, path, credServiceOwner, service, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ServiceDelete(ctx context.Context, apiKey int64) error {
	path := pathServiceDelete + strconv.FormatInt(apiKey, 10)
	return c.call(ctx, "ServiceDelete", http.MethodDelete, path, credServiceOwner, nil, nil)
}

func (c *clientImpl) ClientGet(ctx context.Context, clientID int64) (*dto.Client, error) {
	var out dto.Client
	path := pathClientGet + strconv.FormatInt(clientID, 10)
	if err := c.call(ctx, "ClientGet", http.MethodGet, path, credService, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ClientList(ctx context.Context, developer string, start, end int) (*dto.ClientListResponse, error) {
	var out dto.ClientListResponse
	q := rangeQuery(start, end)
	if developer != "" {
		q += "&developer=" + url.QueryEscape(developer)
	}
	if err := c.call(ctx, "ClientList", http.MethodGet, pathClientList+"?"+q, credService, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ClientCreate(ctx context.Context, client *dto.Client) (*dto.Client, error) {
	var out dto.Client
	if err := c.call(ctx, "ClientCreate", http.MethodPost, pathClientCreate, credService, client, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ClientUpdate(ctx context.Context, client *dto.Client) (*dto.Client, error) {
	var out dto.Client
	path := pathClientUpdate + strconv.FormatInt(client.ClientID, 10)
	if err := c.call(ctx, "ClientUpdate", http.MethodPost, path, credService, client, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *clientImpl) ClientDelete(ctx context.Context, clientID int64) error {
	path := pathClientDelete + strconv.FormatInt(clientID, 10)
	return c.call(ctx, "ClientDelete", http.MethodDelete, path, credService, nil, nil)
}

func rangeQuery(start, end int) string {
	return "start=" + strconv.Itoa(start) + "&end=" + strconv.Itoa(end)
}
