package authletetest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/authlete-go/dto"
)

// mint emite access/refresh token para el record y lo indexa. Caller debe
// tener el lock tomado.
func (s *Server) mintLocked(rec *tokenRecord) {
	rec.accessToken = uuid.NewString()
	rec.refreshToken = uuid.NewString()
	if rec.expiresAt.IsZero() {
		rec.expiresAt = time.Now().Add(time.Hour)
	}
	s.tokens[rec.accessToken] = rec
	s.refresh[rec.refreshToken] = rec
}

func parseForm(raw string) url.Values {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return url.Values{}
	}
	return v
}

func splitScopes(scope string) []string {
	return strings.Fields(scope)
}

func scopesOf(names []string) []dto.Scope {
	out := make([]dto.Scope, 0, len(names))
	for _, n := range names {
		out = append(out, dto.Scope{Name: n})
	}
	return out
}

// --- authorization ---

func (s *Server) handleAuthorization(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthorizationRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)

	// Una PAR previa reemplaza los parámetros del request.
	if ru := params.Get("request_uri"); ru != "" {
		s.mu.Lock()
		stored, ok := s.parStore[ru]
		delete(s.parStore, ru)
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusOK, dto.AuthorizationResponse{
				APIResponse: dto.APIResponse{ResultCode: "A004301", ResultMessage: "unknown request_uri"},
				Action:      dto.AuthorizationBadRequest,
			})
			return
		}
		params = stored
	}

	clientID, _ := strconv.ParseInt(params.Get("client_id"), 10, 64)
	if clientID == 0 {
		writeJSON(w, http.StatusOK, dto.AuthorizationResponse{
			APIResponse: dto.APIResponse{ResultCode: "A004101", ResultMessage: "client_id is missing"},
			Action:      dto.AuthorizationBadRequest,
		})
		return
	}

	scopes := splitScopes(params.Get("scope"))
	var prompts []dto.Prompt
	for _, p := range strings.Fields(params.Get("prompt")) {
		if parsed := dto.ParsePrompt(p); parsed != "" {
			prompts = append(prompts, parsed)
		}
	}

	ticket := uuid.NewString()
	s.mu.Lock()
	s.tickets[ticket] = &pendingAuthz{params: params, clientID: clientID}
	cli := s.clients[clientID]
	s.mu.Unlock()

	resp := dto.AuthorizationResponse{
		APIResponse: okResult(),
		Action:      dto.AuthorizationInteraction,
		Scopes:      scopesOf(scopes),
		Prompts:     prompts,
		Subject:     params.Get("login_hint"),
		Ticket:      ticket,
	}
	if cli != nil {
		resp.Client = cli
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthorizationIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthorizationIssueRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	pending, ok := s.tickets[req.Ticket]
	delete(s.tickets, req.Ticket)
	s.mu.Unlock()

	if !ok || req.Subject == "" {
		writeJSON(w, http.StatusOK, dto.AuthorizationIssueResponse{
			APIResponse: dto.APIResponse{ResultCode: "A004201", ResultMessage: "invalid ticket or missing subject"},
			Action:      dto.AuthorizationIssueBadRequest,
		})
		return
	}

	scopes := req.Scopes
	if scopes == nil {
		scopes = splitScopes(pending.params.Get("scope"))
	}
	code := uuid.NewString()
	s.mu.Lock()
	s.codes[code] = &tokenRecord{
		clientID:   pending.clientID,
		subject:    req.Subject,
		scopes:     scopes,
		grantType:  dto.GrantAuthorizationCode,
		properties: req.Properties,
	}
	s.mu.Unlock()

	redirect := pending.params.Get("redirect_uri")
	location := redirect + "?code=" + code
	if st := pending.params.Get("state"); st != "" {
		location += "&state=" + url.QueryEscape(st)
	}
	writeJSON(w, http.StatusOK, dto.AuthorizationIssueResponse{
		APIResponse:       okResult(),
		Action:            dto.AuthorizationIssueLocation,
		ResponseContent:   location,
		AuthorizationCode: code,
	})
}

func (s *Server) handleAuthorizationFail(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthorizationFailRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	pending, ok := s.tickets[req.Ticket]
	delete(s.tickets, req.Ticket)
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, dto.AuthorizationFailResponse{
			APIResponse: dto.APIResponse{ResultCode: "A004202", ResultMessage: "invalid ticket"},
			Action:      dto.AuthorizationFailBadRequest,
		})
		return
	}
	errCode := "access_denied"
	if req.Reason == dto.FailServerError {
		errCode = "server_error"
	}
	location := pending.params.Get("redirect_uri") + "?error=" + errCode
	writeJSON(w, http.StatusOK, dto.AuthorizationFailResponse{
		APIResponse:     okResult(),
		Action:          dto.AuthorizationFailLocation,
		ResponseContent: location,
	})
}

// --- token ---

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)
	grant := dto.ParseGrantType(params.Get("grant_type"))

	badRequest := func(code, msg, oauthErr string) {
		writeJSON(w, http.StatusOK, dto.TokenResponse{
			APIResponse:     dto.APIResponse{ResultCode: code, ResultMessage: msg},
			Action:          dto.TokenBadRequest,
			ResponseContent: `{"error":"` + oauthErr + `"}`,
		})
	}

	switch grant {
	case dto.GrantAuthorizationCode:
		code := params.Get("code")
		s.mu.Lock()
		rec, ok := s.codes[code]
		delete(s.codes, code)
		if ok {
			s.mintLocked(rec)
		}
		s.mu.Unlock()
		if !ok {
			badRequest("A005102", "invalid authorization code", "invalid_grant")
			return
		}
		s.writeTokenOK(w, rec)

	case dto.GrantRefreshToken:
		rt := params.Get("refresh_token")
		s.mu.Lock()
		old, ok := s.refresh[rt]
		var rec *tokenRecord
		if ok {
			// rotación: el refresh token viejo se invalida
			delete(s.refresh, rt)
			delete(s.tokens, old.accessToken)
			rec = &tokenRecord{
				clientID:  old.clientID,
				subject:   old.subject,
				scopes:    old.scopes,
				grantType: dto.GrantRefreshToken,
			}
			s.mintLocked(rec)
		}
		s.mu.Unlock()
		if !ok {
			badRequest("A005103", "invalid refresh token", "invalid_grant")
			return
		}
		s.writeTokenOK(w, rec)

	case dto.GrantClientCredentials:
		clientID, _ := strconv.ParseInt(req.ClientID, 10, 64)
		rec := &tokenRecord{
			clientID:  clientID,
			scopes:    splitScopes(params.Get("scope")),
			grantType: dto.GrantClientCredentials,
		}
		s.mu.Lock()
		s.mintLocked(rec)
		s.mu.Unlock()
		s.writeTokenOK(w, rec)

	case dto.GrantPassword:
		// El caller valida las credenciales y llama a /auth/token/issue.
		ticket := uuid.NewString()
		clientID, _ := strconv.ParseInt(req.ClientID, 10, 64)
		s.mu.Lock()
		s.tickets[ticket] = &pendingAuthz{params: params, clientID: clientID}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, dto.TokenResponse{
			APIResponse: okResult(),
			Action:      dto.TokenPassword,
			Username:    params.Get("username"),
			Password:    params.Get("password"),
			Ticket:      ticket,
		})

	case dto.GrantCIBA:
		authReqID := params.Get("auth_req_id")
		s.mu.Lock()
		ciba, ok := s.cibaByID[authReqID]
		s.mu.Unlock()
		if !ok {
			badRequest("A005104", "unknown auth_req_id", "invalid_grant")
			return
		}
		if ciba.denied {
			badRequest("A005105", "access denied by the user", "access_denied")
			return
		}
		if ciba.completed == nil {
			badRequest("A005106", "authentication not completed yet", "authorization_pending")
			return
		}
		s.writeTokenOK(w, ciba.completed)

	case dto.GrantDeviceCode:
		dc := params.Get("device_code")
		s.mu.Lock()
		dev, ok := s.devices[dc]
		var rec *tokenRecord
		if ok && dev.approved {
			rec = &tokenRecord{
				clientID:  dev.clientID,
				subject:   dev.subject,
				scopes:    dev.scopes,
				grantType: dto.GrantDeviceCode,
			}
			s.mintLocked(rec)
			delete(s.devices, dc)
			delete(s.userCodes, dev.userCode)
		}
		s.mu.Unlock()
		switch {
		case !ok:
			badRequest("A005107", "unknown device code", "invalid_grant")
		case rec == nil && dev.denied:
			badRequest("A005108", "access denied by the user", "access_denied")
		case rec == nil:
			badRequest("A005109", "authorization pending", "authorization_pending")
		default:
			s.writeTokenOK(w, rec)
		}

	default:
		badRequest("A005101", "unsupported grant_type", "unsupported_grant_type")
	}
}

func (s *Server) writeTokenOK(w http.ResponseWriter, rec *tokenRecord) {
	writeJSON(w, http.StatusOK, dto.TokenResponse{
		APIResponse:          okResult(),
		Action:               dto.TokenOK,
		AccessToken:          rec.accessToken,
		AccessTokenExpiresAt: rec.expiresAt.UnixMilli(),
		AccessTokenDuration:  int64(time.Until(rec.expiresAt).Seconds()),
		RefreshToken:         rec.refreshToken,
		GrantType:            rec.grantType,
		ClientID:             rec.clientID,
		Subject:              rec.subject,
		Scopes:               rec.scopes,
		Properties:           rec.properties,
	})
}

func (s *Server) handleTokenIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenIssueRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	pending, ok := s.tickets[req.Ticket]
	delete(s.tickets, req.Ticket)
	var rec *tokenRecord
	if ok {
		rec = &tokenRecord{
			clientID:   pending.clientID,
			subject:    req.Subject,
			scopes:     splitScopes(pending.params.Get("scope")),
			grantType:  dto.GrantPassword,
			properties: req.Properties,
		}
		s.mintLocked(rec)
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, dto.TokenIssueResponse{
			APIResponse: dto.APIResponse{ResultCode: "A005201", ResultMessage: "invalid ticket"},
			Action:      dto.TokenIssueInternalServerError,
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenIssueResponse{
		APIResponse:          okResult(),
		Action:               dto.TokenIssueOK,
		AccessToken:          rec.accessToken,
		AccessTokenExpiresAt: rec.expiresAt.UnixMilli(),
		RefreshToken:         rec.refreshToken,
		ClientID:             rec.clientID,
		Subject:              rec.subject,
		Scopes:               rec.scopes,
	})
}

func (s *Server) handleTokenFail(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenFailRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	delete(s.tickets, req.Ticket)
	s.mu.Unlock()
	content := `{"error":"invalid_request"}`
	if req.Reason == dto.TokenFailInvalidResourceOwnerCredentials {
		content = `{"error":"invalid_grant"}`
	}
	writeJSON(w, http.StatusOK, dto.TokenFailResponse{
		APIResponse:     okResult(),
		Action:          dto.TokenFailBadRequest,
		ResponseContent: content,
	})
}

func (s *Server) handleTokenCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenCreateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.GrantType == "" || req.ClientID == 0 {
		writeJSON(w, http.StatusOK, dto.TokenCreateResponse{
			APIResponse: dto.APIResponse{ResultCode: "A005301", ResultMessage: "grantType and clientId are required"},
			Action:      dto.TokenCreateBadRequest,
		})
		return
	}
	dur := req.AccessTokenDuration
	if dur == 0 {
		dur = 86400
	}
	rec := &tokenRecord{
		accessToken:  req.AccessToken,
		refreshToken: req.RefreshToken,
		clientID:     req.ClientID,
		subject:      req.Subject,
		scopes:       req.Scopes,
		grantType:    req.GrantType,
		properties:   req.Properties,
		expiresAt:    time.Now().Add(time.Duration(dur) * time.Second),
	}
	s.mu.Lock()
	if rec.accessToken == "" {
		s.mintLocked(rec)
		rec.expiresAt = time.Now().Add(time.Duration(dur) * time.Second)
	} else {
		if rec.refreshToken == "" {
			rec.refreshToken = uuid.NewString()
		}
		s.tokens[rec.accessToken] = rec
		s.refresh[rec.refreshToken] = rec
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, dto.TokenCreateResponse{
		APIResponse:  okResult(),
		Action:       dto.TokenCreateOK,
		GrantType:    rec.grantType,
		ClientID:     rec.clientID,
		Subject:      rec.subject,
		Scopes:       rec.scopes,
		AccessToken:  rec.accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    dur,
		ExpiresAt:    rec.expiresAt.UnixMilli(),
		RefreshToken: rec.refreshToken,
		Properties:   rec.properties,
	})
}

func (s *Server) handleTokenUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	rec, ok := s.tokens[req.AccessToken]
	if ok {
		if req.Scopes != nil {
			rec.scopes = req.Scopes
		}
		if req.Properties != nil {
			rec.properties = req.Properties
		}
		if req.AccessTokenExpiresAt > 0 {
			rec.expiresAt = time.UnixMilli(req.AccessTokenExpiresAt)
		}
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, dto.TokenUpdateResponse{
			APIResponse: dto.APIResponse{ResultCode: "A005401", ResultMessage: "token not found"},
			Action:      dto.TokenUpdateNotFound,
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenUpdateResponse{
		APIResponse:          okResult(),
		Action:               dto.TokenUpdateOK,
		AccessToken:          rec.accessToken,
		AccessTokenExpiresAt: rec.expiresAt.UnixMilli(),
		Scopes:               rec.scopes,
		Properties:           rec.properties,
	})
}

// --- introspection / revocation / userinfo ---

func subset(requested, held []string) bool {
	have := map[string]bool{}
	for _, s := range held {
		have[s] = true
	}
	for _, s := range requested {
		if !have[s] {
			return false
		}
	}
	return true
}

func (s *Server) handleIntrospection(w http.ResponseWriter, r *http.Request) {
	var req dto.IntrospectionRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	s.IntrospectionCalls++
	rec, ok := s.tokens[req.Token]
	s.mu.Unlock()

	resp := dto.IntrospectionResponse{APIResponse: okResult()}
	switch {
	case !ok:
		resp.Action = dto.IntrospectionUnauthorized
		resp.ResponseContent = `Bearer error="invalid_token"`
	case time.Now().After(rec.expiresAt):
		resp.Action = dto.IntrospectionUnauthorized
		resp.Existent = true
		resp.ResponseContent = `Bearer error="invalid_token"`
	case !subset(req.Scopes, rec.scopes):
		resp.Action = dto.IntrospectionForbidden
		resp.Existent = true
		resp.Usable = true
		resp.ResponseContent = `Bearer error="insufficient_scope"`
	case req.Subject != "" && req.Subject != rec.subject:
		resp.Action = dto.IntrospectionForbidden
		resp.Existent = true
		resp.Usable = true
		resp.Sufficient = true
	default:
		resp.Action = dto.IntrospectionOK
		resp.Existent = true
		resp.Usable = true
		resp.Sufficient = true
		resp.Refreshable = rec.refreshToken != ""
		resp.ClientID = rec.clientID
		resp.Subject = rec.subject
		resp.Scopes = rec.scopes
		resp.ExpiresAt = rec.expiresAt.UnixMilli()
		resp.Properties = rec.properties
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStandardIntrospection(w http.ResponseWriter, r *http.Request) {
	var req dto.StandardIntrospectionRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)
	token := params.Get("token")

	s.mu.Lock()
	rec, ok := s.tokens[token]
	s.mu.Unlock()

	var payload map[string]any
	if ok && time.Now().Before(rec.expiresAt) {
		payload = map[string]any{
			"active":    true,
			"client_id": strconv.FormatInt(rec.clientID, 10),
			"sub":       rec.subject,
			"scope":     strings.Join(rec.scopes, " "),
			"exp":       rec.expiresAt.Unix(),
		}
	} else {
		payload = map[string]any{"active": false}
	}
	content, _ := json.Marshal(payload)
	writeJSON(w, http.StatusOK, dto.StandardIntrospectionResponse{
		APIResponse:     okResult(),
		Action:          dto.StandardIntrospectionOK,
		ResponseContent: string(content),
	})
}

func (s *Server) handleRevocation(w http.ResponseWriter, r *http.Request) {
	var req dto.RevocationRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)
	token := params.Get("token")
	if token == "" {
		writeJSON(w, http.StatusOK, dto.RevocationResponse{
			APIResponse:     dto.APIResponse{ResultCode: "A006101", ResultMessage: "token is missing"},
			Action:          dto.RevocationBadRequest,
			ResponseContent: `{"error":"invalid_request"}`,
		})
		return
	}
	s.mu.Lock()
	if rec, ok := s.tokens[token]; ok {
		delete(s.tokens, rec.accessToken)
		delete(s.refresh, rec.refreshToken)
	} else if rec, ok := s.refresh[token]; ok {
		delete(s.tokens, rec.accessToken)
		delete(s.refresh, rec.refreshToken)
	}
	s.mu.Unlock()
	// RFC 7009: revocar un token desconocido también es OK
	writeJSON(w, http.StatusOK, dto.RevocationResponse{
		APIResponse: okResult(),
		Action:      dto.RevocationOK,
	})
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.UserInfoRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	rec, ok := s.tokens[req.Token]
	s.mu.Unlock()
	if !ok || time.Now().After(rec.expiresAt) {
		writeJSON(w, http.StatusOK, dto.UserInfoResponse{
			APIResponse:     dto.APIResponse{ResultCode: "A007101", ResultMessage: "invalid access token"},
			Action:          dto.UserInfoUnauthorized,
			ResponseContent: `Bearer error="invalid_token"`,
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.UserInfoResponse{
		APIResponse: okResult(),
		Action:      dto.UserInfoOK,
		ClientID:    rec.clientID,
		Subject:     rec.subject,
		Scopes:      rec.scopes,
		Token:       rec.accessToken,
	})
}

func (s *Server) handleUserInfoIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.UserInfoIssueRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	rec, ok := s.tokens[req.Token]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, dto.UserInfoIssueResponse{
			APIResponse:     dto.APIResponse{ResultCode: "A007201", ResultMessage: "invalid access token"},
			Action:          dto.UserInfoIssueUnauthorized,
			ResponseContent: `Bearer error="invalid_token"`,
		})
		return
	}
	content := req.Claims
	if content == "" {
		b, _ := json.Marshal(map[string]string{"sub": rec.subject})
		content = string(b)
	}
	writeJSON(w, http.StatusOK, dto.UserInfoIssueResponse{
		APIResponse:     okResult(),
		Action:          dto.UserInfoIssueJSON,
		ResponseContent: content,
	})
}

// --- PAR ---

func (s *Server) handlePushedAuthReq(w http.ResponseWriter, r *http.Request) {
	var req dto.PushedAuthReqRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)
	if params.Get("client_id") == "" && req.ClientID != "" {
		params.Set("client_id", req.ClientID)
	}
	if params.Get("client_id") == "" {
		writeJSON(w, http.StatusOK, dto.PushedAuthReqResponse{
			APIResponse:     dto.APIResponse{ResultCode: "A008101", ResultMessage: "client_id is missing"},
			Action:          dto.PushedAuthReqBadRequest,
			ResponseContent: `{"error":"invalid_request"}`,
		})
		return
	}
	requestURI := "urn:ietf:params:oauth:request_uri:" + uuid.NewString()
	s.mu.Lock()
	s.parStore[requestURI] = params
	s.mu.Unlock()

	content, _ := json.Marshal(map[string]any{
		"request_uri": requestURI,
		"expires_in":  90,
	})
	writeJSON(w, http.StatusOK, dto.PushedAuthReqResponse{
		APIResponse:     okResult(),
		Action:          dto.PushedAuthReqCreated,
		ResponseContent: string(content),
		RequestURI:      requestURI,
	})
}

// --- CIBA ---

func (s *Server) handleBCAuth(w http.ResponseWriter, r *http.Request) {
	var req dto.BackchannelAuthenticationRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)
	hint := params.Get("login_hint")
	hintType := "LOGIN_HINT"
	if hint == "" {
		if h := params.Get("id_token_hint"); h != "" {
			hint, hintType = h, "ID_TOKEN_HINT"
		} else if h := params.Get("login_hint_token"); h != "" {
			hint, hintType = h, "LOGIN_HINT_TOKEN"
		}
	}
	if hint == "" {
		writeJSON(w, http.StatusOK, dto.BackchannelAuthenticationResponse{
			APIResponse:     dto.APIResponse{ResultCode: "A009101", ResultMessage: "no user hint"},
			Action:          dto.BackchannelAuthenticationBadRequest,
			ResponseContent: `{"error":"invalid_request"}`,
		})
		return
	}

	clientID, _ := strconv.ParseInt(req.ClientID, 10, 64)
	scopes := splitScopes(params.Get("scope"))
	ticket := uuid.NewString()
	s.mu.Lock()
	s.cibaReqs[ticket] = &pendingCIBA{
		ticket:   ticket,
		clientID: clientID,
		hint:     hint,
		hintType: hintType,
		scopes:   scopes,
	}
	cli := s.clients[clientID]
	s.mu.Unlock()

	resp := dto.BackchannelAuthenticationResponse{
		APIResponse:    okResult(),
		Action:         dto.BackchannelAuthenticationUserIdentification,
		ClientID:       clientID,
		DeliveryMode:   dto.DeliveryPoll,
		Scopes:         scopesOf(scopes),
		HintType:       hintType,
		Hint:           hint,
		BindingMessage: params.Get("binding_message"),
		Ticket:         ticket,
	}
	if cli != nil {
		resp.ClientName = cli.ClientName
		if cli.BcDeliveryMode != "" {
			resp.DeliveryMode = cli.BcDeliveryMode
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBCAuthIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.BackchannelAuthenticationIssueRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	ciba, ok := s.cibaReqs[req.Ticket]
	if ok {
		ciba.authReqID = uuid.NewString()
		s.cibaByID[ciba.authReqID] = ciba
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, dto.BackchannelAuthenticationIssueResponse{
			APIResponse: dto.APIResponse{ResultCode: "A009201", ResultMessage: "invalid ticket"},
			Action:      dto.BackchannelAuthenticationIssueInvalidTicket,
		})
		return
	}
	content, _ := json.Marshal(map[string]any{
		"auth_req_id": ciba.authReqID,
		"expires_in":  600,
		"interval":    5,
	})
	writeJSON(w, http.StatusOK, dto.BackchannelAuthenticationIssueResponse{
		APIResponse:     okResult(),
		Action:          dto.BackchannelAuthenticationIssueOK,
		ResponseContent: string(content),
		AuthReqID:       ciba.authReqID,
		ExpiresIn:       600,
		Interval:        5,
	})
}

func (s *Server) handleBCAuthComplete(w http.ResponseWriter, r *http.Request) {
	var req dto.BackchannelAuthenticationCompleteRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	ciba, ok := s.cibaReqs[req.Ticket]
	var rec *tokenRecord
	if ok {
		switch req.Result {
		case dto.BcCompleteAuthorized:
			scopes := req.Scopes
			if scopes == nil {
				scopes = ciba.scopes
			}
			rec = &tokenRecord{
				clientID:   ciba.clientID,
				subject:    req.Subject,
				scopes:     scopes,
				grantType:  dto.GrantCIBA,
				properties: req.Properties,
			}
			s.mintLocked(rec)
			ciba.completed = rec
		default:
			ciba.denied = true
		}
	}
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusOK, dto.BackchannelAuthenticationCompleteResponse{
			APIResponse: dto.APIResponse{ResultCode: "A009301", ResultMessage: "invalid ticket"},
			Action:      dto.BcCompleteActionServerError,
		})
		return
	}
	resp := dto.BackchannelAuthenticationCompleteResponse{
		APIResponse:  okResult(),
		Action:       dto.BcCompleteActionNoAction,
		ClientID:     ciba.clientID,
		DeliveryMode: dto.DeliveryPoll,
		AuthReqID:    ciba.authReqID,
	}
	if rec != nil {
		resp.AccessToken = rec.accessToken
		resp.RefreshToken = rec.refreshToken
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBCAuthFail(w http.ResponseWriter, r *http.Request) {
	var req dto.BackchannelAuthenticationFailRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	delete(s.cibaReqs, req.Ticket)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, dto.BackchannelAuthenticationFailResponse{
		APIResponse:     okResult(),
		Action:          dto.BcFailActionBadRequest,
		ResponseContent: `{"error":"access_denied"}`,
	})
}

// --- device flow ---

func (s *Server) handleDeviceAuthorization(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceAuthorizationRequest
	if !decode(w, r, &req) {
		return
	}
	params := parseForm(req.Parameters)
	clientID, _ := strconv.ParseInt(req.ClientID, 10, 64)
	if clientID == 0 {
		clientID, _ = strconv.ParseInt(params.Get("client_id"), 10, 64)
	}
	if clientID == 0 {
		writeJSON(w, http.StatusOK, dto.DeviceAuthorizationResponse{
			APIResponse:     dto.APIResponse{ResultCode: "A010101", ResultMessage: "client_id is missing"},
			Action:          dto.DeviceAuthorizationBadRequest,
			ResponseContent: `{"error":"invalid_request"}`,
		})
		return
	}

	scopes := splitScopes(params.Get("scope"))
	dev := &pendingDevice{
		deviceCode: uuid.NewString(),
		userCode:   strings.ToUpper(uuid.NewString()[:8]),
		clientID:   clientID,
		scopes:     scopes,
		expiresAt:  time.Now().Add(10 * time.Minute),
	}
	s.mu.Lock()
	s.devices[dev.deviceCode] = dev
	s.userCodes[dev.userCode] = dev.deviceCode
	cli := s.clients[clientID]
	s.mu.Unlock()

	resp := dto.DeviceAuthorizationResponse{
		APIResponse:             okResult(),
		Action:                  dto.DeviceAuthorizationOK,
		ClientID:                clientID,
		Scopes:                  scopesOf(scopes),
		DeviceCode:              dev.deviceCode,
		UserCode:                dev.userCode,
		VerificationURI:         s.URL + "/device",
		VerificationURIComplete: s.URL + "/device?user_code=" + dev.userCode,
		ExpiresIn:               600,
		Interval:                5,
	}
	if cli != nil {
		resp.ClientName = cli.ClientName
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeviceVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceVerificationRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	dc, ok := s.userCodes[req.UserCode]
	var dev *pendingDevice
	if ok {
		dev = s.devices[dc]
	}
	s.mu.Unlock()

	switch {
	case !ok || dev == nil:
		writeJSON(w, http.StatusOK, dto.DeviceVerificationResponse{
			APIResponse: okResult(),
			Action:      dto.DeviceVerificationNotExist,
		})
	case time.Now().After(dev.expiresAt):
		writeJSON(w, http.StatusOK, dto.DeviceVerificationResponse{
			APIResponse: okResult(),
			Action:      dto.DeviceVerificationExpired,
		})
	default:
		writeJSON(w, http.StatusOK, dto.DeviceVerificationResponse{
			APIResponse: okResult(),
			Action:      dto.DeviceVerificationValid,
			ClientID:    dev.clientID,
			Scopes:      scopesOf(dev.scopes),
			ExpiresAt:   dev.expiresAt.UnixMilli(),
		})
	}
}

func (s *Server) handleDeviceComplete(w http.ResponseWriter, r *http.Request) {
	var req dto.DeviceCompleteRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	dc, ok := s.userCodes[req.UserCode]
	var dev *pendingDevice
	if ok {
		dev = s.devices[dc]
	}
	expired := dev != nil && time.Now().After(dev.expiresAt)
	if dev != nil && !expired {
		if req.Result == dto.DeviceCompleteAuthorized {
			dev.approved = true
			dev.subject = req.Subject
			if req.Scopes != nil {
				dev.scopes = req.Scopes
			}
		} else {
			dev.denied = true
		}
	}
	s.mu.Unlock()

	switch {
	case dev == nil:
		writeJSON(w, http.StatusOK, dto.DeviceCompleteResponse{
			APIResponse: okResult(),
			Action:      dto.DeviceCompleteActionUserCodeNotExist,
		})
	case expired:
		writeJSON(w, http.StatusOK, dto.DeviceCompleteResponse{
			APIResponse: okResult(),
			Action:      dto.DeviceCompleteActionUserCodeExpired,
		})
	default:
		writeJSON(w, http.StatusOK, dto.DeviceCompleteResponse{
			APIResponse: okResult(),
			Action:      dto.DeviceCompleteActionSuccess,
		})
	}
}

// --- grant management ---

func (s *Server) handleGM(w http.ResponseWriter, r *http.Request) {
	var req dto.GMRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	grant, ok := s.grants[req.GrantID]
	if req.GMAction == dto.GMActionRevoke && ok {
		delete(s.grants, req.GrantID)
	}
	s.mu.Unlock()

	switch {
	case !ok:
		writeJSON(w, http.StatusOK, dto.GMResponse{
			APIResponse: dto.APIResponse{ResultCode: "A011101", ResultMessage: "grant not found"},
			Action:      dto.GMNotFound,
		})
	case req.GMAction == dto.GMActionRevoke:
		writeJSON(w, http.StatusOK, dto.GMResponse{
			APIResponse: okResult(),
			Action:      dto.GMNoContent,
		})
	case req.GMAction == dto.GMActionQuery:
		content, _ := json.Marshal(grant)
		writeJSON(w, http.StatusOK, dto.GMResponse{
			APIResponse:     okResult(),
			Action:          dto.GMOK,
			ResponseContent: string(content),
		})
	default:
		writeJSON(w, http.StatusOK, dto.GMResponse{
			APIResponse: dto.APIResponse{ResultCode: "A011102", ResultMessage: "unsupported gmAction"},
			Action:      dto.GMCallerError,
		})
	}
}
