// Package authletetest levanta un backend falso en memoria para tests.
//
// El servidor implementa los endpoints que consume api.Client con semántica
// suficiente para ejercitar flujos completos: authorization -> issue -> token
// -> introspection, PAR, CIBA, device flow y CRUD de services/clients. El
// estado vive en memoria y muere con el server.
//
// Uso:
//
//	srv := authletetest.New()
//	defer srv.Close()
//	cfg := srv.ClientConfig()
//	c, _ := api.New(cfg)
package authletetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/authlete-go/conf"
	"github.com/dropDatabas3/authlete-go/dto"
	"github.com/dropDatabas3/authlete-go/internal/validation"
)

// Credenciales por defecto del server de test.
const (
	DefaultServiceAPIKey         = "21653835348762"
	DefaultServiceAPISecret      = "service-secret"
	DefaultServiceOwnerAPIKey    = "1532787510"
	DefaultServiceOwnerAPISecret = "owner-secret"
)

type tokenRecord struct {
	accessToken  string
	refreshToken string
	clientID     int64
	subject      string
	scopes       []string
	grantType    dto.GrantType
	properties   []dto.Property
	expiresAt    time.Time
}

type pendingAuthz struct {
	params   url.Values
	clientID int64
}

type pendingCIBA struct {
	ticket    string
	clientID  int64
	hint      string
	hintType  string
	scopes    []string
	authReqID string
	// resultado de /complete; nil hasta entonces
	completed *tokenRecord
	denied    bool
}

type pendingDevice struct {
	deviceCode string
	userCode   string
	clientID   int64
	scopes     []string
	expiresAt  time.Time
	approved   bool
	denied     bool
	subject    string
}

// Server es el backend falso. Todos los campos exportados son de solo lectura
// una vez creado.
type Server struct {
	URL string

	ServiceAPIKey         string
	ServiceAPISecret      string
	ServiceOwnerAPIKey    string
	ServiceOwnerAPISecret string

	srv *httptest.Server

	mu         sync.Mutex
	services   map[int64]*dto.Service
	clients    map[int64]*dto.Client
	tickets    map[string]*pendingAuthz
	codes      map[string]*tokenRecord // authorization code -> token base
	tokens     map[string]*tokenRecord // access token -> record
	refresh    map[string]*tokenRecord
	cibaReqs   map[string]*pendingCIBA   // ticket -> req
	cibaByID   map[string]*pendingCIBA   // auth_req_id -> req
	devices    map[string]*pendingDevice // device code -> req
	userCodes  map[string]string         // user code -> device code
	parStore   map[string]url.Values     // request_uri -> params
	grants     map[string]*dto.Grant
	nextSvcKey int64
	nextCliID  int64

	failNext []int // status codes a inyectar, FIFO

	// IntrospectionCalls cuenta las llamadas reales a /api/auth/introspection,
	// útil para verificar caching del lado del cliente.
	IntrospectionCalls int
}

// New arranca el server con las credenciales por defecto.
func New() *Server {
	s := &Server{
		ServiceAPIKey:         DefaultServiceAPIKey,
		ServiceAPISecret:      DefaultServiceAPISecret,
		ServiceOwnerAPIKey:    DefaultServiceOwnerAPIKey,
		ServiceOwnerAPISecret: DefaultServiceOwnerAPISecret,
		services:              map[int64]*dto.Service{},
		clients:               map[int64]*dto.Client{},
		tickets:               map[string]*pendingAuthz{},
		codes:                 map[string]*tokenRecord{},
		tokens:                map[string]*tokenRecord{},
		refresh:               map[string]*tokenRecord{},
		cibaReqs:              map[string]*pendingCIBA{},
		cibaByID:              map[string]*pendingCIBA{},
		devices:               map[string]*pendingDevice{},
		userCodes:             map[string]string{},
		parStore:              map[string]url.Values{},
		grants:                map[string]*dto.Grant{},
		nextSvcKey:            1000,
		nextCliID:             5000,
	}
	s.srv = httptest.NewServer(s.router())
	s.URL = s.srv.URL
	return s
}

// Close apaga el server.
func (s *Server) Close() { s.srv.Close() }

// ClientConfig arma una conf.Configuration apuntando a este server.
func (s *Server) ClientConfig() *conf.Configuration {
	cfg := &conf.Configuration{
		BaseURL:               s.URL,
		ServiceAPIKey:         s.ServiceAPIKey,
		ServiceAPISecret:      s.ServiceAPISecret,
		ServiceOwnerAPIKey:    s.ServiceOwnerAPIKey,
		ServiceOwnerAPISecret: s.ServiceOwnerAPISecret,
	}
	cfg.Timeout = 5 * time.Second
	cfg.Retry.MaxAttempts = 3
	cfg.Cache.IntrospectionTTL = 30 * time.Second
	return cfg
}

// FailNext hace que la próxima request (cualquier endpoint) responda el status
// dado sin procesar nada. Llamadas sucesivas encolan más fallos.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	s.failNext = append(s.failNext, status)
	s.mu.Unlock()
}

// AddGrant registra un grant para /api/gm.
func (s *Server) AddGrant(grantID string, g *dto.Grant) {
	s.mu.Lock()
	s.grants[grantID] = g
	s.mu.Unlock()
}

// SeedToken registra un access token ya emitido, para tests de introspección
// que no quieren correr el flujo completo.
func (s *Server) SeedToken(accessToken, subject string, clientID int64, scopes []string, ttl time.Duration) {
	s.mu.Lock()
	s.tokens[accessToken] = &tokenRecord{
		accessToken: accessToken,
		clientID:    clientID,
		subject:     subject,
		scopes:      scopes,
		grantType:   dto.GrantAuthorizationCode,
		expiresAt:   time.Now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.failureInjector)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBasic(func() (string, string) { return s.ServiceAPIKey, s.ServiceAPISecret }))

		r.Post("/api/auth/authorization", s.handleAuthorization)
		r.Post("/api/auth/authorization/issue", s.handleAuthorizationIssue)
		r.Post("/api/auth/authorization/fail", s.handleAuthorizationFail)
		r.Post("/api/auth/token", s.handleToken)
		r.Post("/api/auth/token/issue", s.handleTokenIssue)
		r.Post("/api/auth/token/fail", s.handleTokenFail)
		r.Post("/api/auth/token/create", s.handleTokenCreate)
		r.Post("/api/auth/token/update", s.handleTokenUpdate)
		r.Post("/api/auth/introspection", s.handleIntrospection)
		r.Post("/api/auth/introspection/standard", s.handleStandardIntrospection)
		r.Post("/api/auth/revocation", s.handleRevocation)
		r.Post("/api/auth/userinfo", s.handleUserInfo)
		r.Post("/api/auth/userinfo/issue", s.handleUserInfoIssue)
		r.Post("/api/pushed_auth_req", s.handlePushedAuthReq)
		r.Post("/api/backchannel/authentication", s.handleBCAuth)
		r.Post("/api/backchannel/authentication/issue", s.handleBCAuthIssue)
		r.Post("/api/backchannel/authentication/complete", s.handleBCAuthComplete)
		r.Post("/api/backchannel/authentication/fail", s.handleBCAuthFail)
		r.Post("/api/device/authorization", s.handleDeviceAuthorization)
		r.Post("/api/device/complete", s.handleDeviceComplete)
		r.Post("/api/device/verification", s.handleDeviceVerification)
		r.Post("/api/gm", s.handleGM)

		r.Get("/api/client/get/list", s.handleClientList)
		r.Get("/api/client/get/{clientId}", s.handleClientGet)
		r.Post("/api/client/create", s.handleClientCreate)
		r.Post("/api/client/update/{clientId}", s.handleClientUpdate)
		r.Delete("/api/client/delete/{clientId}", s.handleClientDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireBasic(func() (string, string) { return s.ServiceOwnerAPIKey, s.ServiceOwnerAPISecret }))

		r.Get("/api/service/get/list", s.handleServiceList)
		r.Get("/api/service/get/{apiKey}", s.handleServiceGet)
		r.Post("/api/service/create", s.handleServiceCreate)
		r.Post("/api/service/update/{apiKey}", s.handleServiceUpdate)
		r.Delete("/api/service/delete/{apiKey}", s.handleServiceDelete)
	})

	return r
}

func (s *Server) failureInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var status int
		if len(s.failNext) > 0 {
			status = s.failNext[0]
			s.failNext = s.failNext[1:]
		}
		s.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, dto.APIResponse{ResultCode: "A090001", ResultMessage: "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireBasic(creds func() (string, string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wantUser, wantPass := creds()
			user, pass, ok := r.BasicAuth()
			if !ok || user != wantUser || pass != wantPass {
				writeJSON(w, http.StatusUnauthorized, dto.APIResponse{
					ResultCode:    "A001201",
					ResultMessage: "invalid credentials",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.APIResponse{
			ResultCode:    "A001114",
			ResultMessage: "request body is not valid JSON",
		})
		return false
	}
	return true
}

func okResult() dto.APIResponse {
	return dto.APIResponse{ResultCode: "A000000", ResultMessage: "ok"}
}

// --- service CRUD ---

func (s *Server) handleServiceList(w http.ResponseWriter, r *http.Request) {
	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	end, _ := strconv.Atoi(r.URL.Query().Get("end"))

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]dto.Service, 0, len(s.services))
	for _, svc := range s.services {
		all = append(all, *svc)
	}
	// Orden estable por apiKey
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].APIKey < all[i].APIKey {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	total := len(all)
	if end <= 0 || end > total {
		end = total
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}
	writeJSON(w, http.StatusOK, dto.ServiceListResponse{
		Start:      start,
		End:        end,
		TotalCount: total,
		Services:   all[start:end],
	})
}

func (s *Server) handleServiceGet(w http.ResponseWriter, r *http.Request) {
	key, _ := strconv.ParseInt(chi.URLParam(r, "apiKey"), 10, 64)
	s.mu.Lock()
	svc, ok := s.services[key]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.APIResponse{ResultCode: "A001202", ResultMessage: "service not found"})
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) handleServiceCreate(w http.ResponseWriter, r *http.Request) {
	var svc dto.Service
	if !decode(w, r, &svc) {
		return
	}
	if code, msg, ok := validateService(&svc); !ok {
		writeJSON(w, http.StatusBadRequest, dto.APIResponse{ResultCode: code, ResultMessage: msg})
		return
	}
	s.mu.Lock()
	s.nextSvcKey++
	svc.APIKey = s.nextSvcKey
	svc.APISecret = uuid.NewString()
	svc.CreatedAt = time.Now().UnixMilli()
	svc.ModifiedAt = svc.CreatedAt
	s.services[svc.APIKey] = &svc
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) handleServiceUpdate(w http.ResponseWriter, r *http.Request) {
	key, _ := strconv.ParseInt(chi.URLParam(r, "apiKey"), 10, 64)
	var svc dto.Service
	if !decode(w, r, &svc) {
		return
	}
	if code, msg, ok := validateService(&svc); !ok {
		writeJSON(w, http.StatusBadRequest, dto.APIResponse{ResultCode: code, ResultMessage: msg})
		return
	}
	s.mu.Lock()
	old, ok := s.services[key]
	if ok {
		svc.APIKey = key
		svc.APISecret = old.APISecret
		svc.CreatedAt = old.CreatedAt
		svc.ModifiedAt = time.Now().UnixMilli()
		s.services[key] = &svc
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.APIResponse{ResultCode: "A001202", ResultMessage: "service not found"})
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) handleServiceDelete(w http.ResponseWriter, r *http.Request) {
	key, _ := strconv.ParseInt(chi.URLParam(r, "apiKey"), 10, 64)
	s.mu.Lock()
	_, ok := s.services[key]
	delete(s.services, key)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.APIResponse{ResultCode: "A001202", ResultMessage: "service not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateService aplica las mismas reglas que el backend real aplica a los
// nombres de scope registrados.
func validateService(svc *dto.Service) (code, msg string, ok bool) {
	if svc.ServiceName == "" {
		return "A001203", "serviceName is required", false
	}
	for _, sc := range svc.SupportedScopes {
		if !validation.ValidScopeName(sc.Name) {
			return "A001204", "invalid scope name: " + sc.Name, false
		}
	}
	return "", "", true
}

// --- client CRUD ---

func (s *Server) handleClientList(w http.ResponseWriter, r *http.Request) {
	start, _ := strconv.Atoi(r.URL.Query().Get("start"))
	end, _ := strconv.Atoi(r.URL.Query().Get("end"))
	developer := r.URL.Query().Get("developer")

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]dto.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if developer != "" && c.Developer != developer {
			continue
		}
		all = append(all, *c)
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].ClientID < all[i].ClientID {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	total := len(all)
	if end <= 0 || end > total {
		end = total
	}
	if start < 0 {
		start = 0
	}
	if start > end {
		start = end
	}
	writeJSON(w, http.StatusOK, dto.ClientListResponse{
		Start:      start,
		End:        end,
		TotalCount: total,
		Developer:  developer,
		Clients:    all[start:end],
	})
}

func (s *Server) handleClientGet(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	s.mu.Lock()
	c, ok := s.clients[id]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.APIResponse{ResultCode: "A001301", ResultMessage: "client not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClientCreate(w http.ResponseWriter, r *http.Request) {
	var c dto.Client
	if !decode(w, r, &c) {
		return
	}
	s.mu.Lock()
	s.nextCliID++
	c.ClientID = s.nextCliID
	if c.ClientSecret == "" {
		c.ClientSecret = uuid.NewString()
	}
	c.CreatedAt = time.Now().UnixMilli()
	c.ModifiedAt = c.CreatedAt
	s.clients[c.ClientID] = &c
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClientUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	var c dto.Client
	if !decode(w, r, &c) {
		return
	}
	s.mu.Lock()
	old, ok := s.clients[id]
	if ok {
		c.ClientID = id
		if c.ClientSecret == "" {
			c.ClientSecret = old.ClientSecret
		}
		c.CreatedAt = old.CreatedAt
		c.ModifiedAt = time.Now().UnixMilli()
		s.clients[id] = &c
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.APIResponse{ResultCode: "A001301", ResultMessage: "client not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClientDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "clientId"), 10, 64)
	s.mu.Lock()
	_, ok := s.clients[id]
	delete(s.clients, id)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, dto.APIResponse{ResultCode: "A001301", ResultMessage: "client not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
