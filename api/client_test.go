package api_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/authlete-go/api"
	"github.com/dropDatabas3/authlete-go/authletetest"
	"github.com/dropDatabas3/authlete-go/dto"
)

func newClient(t *testing.T, srv *authletetest.Server) api.Client {
	t.Helper()
	c, err := api.New(srv.ClientConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func registerClient(t *testing.T, c api.Client) *dto.Client {
	t.Helper()
	created, err := c.ClientCreate(context.Background(), &dto.Client{
		ClientName:   "test-app",
		ClientType:   dto.ClientTypeConfidential,
		RedirectURIs: []string{"https://app.example.com/cb"},
		GrantTypes:   []dto.GrantType{dto.GrantAuthorizationCode, dto.GrantRefreshToken},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ClientID)
	return created
}

func TestAuthorizationCodeFlow(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	cli := registerClient(t, c)

	// /auth/authorization: el request llega como form serializado
	params := "response_type=code&client_id=" + itoa(cli.ClientID) +
		"&redirect_uri=https%3A%2F%2Fapp.example.com%2Fcb&scope=openid+profile&state=xyz"
	authz, err := c.Authorization(ctx, &dto.AuthorizationRequest{Parameters: params})
	require.NoError(t, err)
	require.Equal(t, dto.AuthorizationInteraction, authz.Action)
	require.NotEmpty(t, authz.Ticket)
	require.Len(t, authz.Scopes, 2)

	// issue tras autenticar al usuario
	issued, err := c.AuthorizationIssue(ctx, &dto.AuthorizationIssueRequest{
		Ticket:  authz.Ticket,
		Subject: "user123",
	})
	require.NoError(t, err)
	require.Equal(t, dto.AuthorizationIssueLocation, issued.Action)
	require.NotEmpty(t, issued.AuthorizationCode)
	require.Contains(t, issued.ResponseContent, "code="+issued.AuthorizationCode)
	require.Contains(t, issued.ResponseContent, "state=xyz")

	// canje del code
	tok, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=authorization_code&code=" + issued.AuthorizationCode,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenOK, tok.Action)
	require.NotEmpty(t, tok.AccessToken)
	require.NotEmpty(t, tok.RefreshToken)
	require.Equal(t, "user123", tok.Subject)
	require.Equal(t, []string{"openid", "profile"}, tok.Scopes)

	// userinfo con el access token
	ui, err := c.UserInfo(ctx, &dto.UserInfoRequest{Token: tok.AccessToken})
	require.NoError(t, err)
	require.Equal(t, dto.UserInfoOK, ui.Action)
	require.Equal(t, "user123", ui.Subject)

	// refresh con rotación
	tok2, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=refresh_token&refresh_token=" + tok.RefreshToken,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenOK, tok2.Action)
	require.NotEqual(t, tok.AccessToken, tok2.AccessToken)

	// el refresh token viejo ya no sirve
	tok3, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=refresh_token&refresh_token=" + tok.RefreshToken,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenBadRequest, tok3.Action)
}

func TestAuthorizationFail(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	cli := registerClient(t, c)
	authz, err := c.Authorization(ctx, &dto.AuthorizationRequest{
		Parameters: "response_type=code&client_id=" + itoa(cli.ClientID) + "&redirect_uri=https%3A%2F%2Fapp.example.com%2Fcb",
	})
	require.NoError(t, err)

	failed, err := c.AuthorizationFail(ctx, &dto.AuthorizationFailRequest{
		Ticket: authz.Ticket,
		Reason: dto.FailDenied,
	})
	require.NoError(t, err)
	require.Equal(t, dto.AuthorizationFailLocation, failed.Action)
	require.Contains(t, failed.ResponseContent, "error=access_denied")
}

func TestIntrospection_CacheAvoidsSecondCall(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.SeedToken("tok-cached", "user123", 42, []string{"openid"}, time.Hour)

	cfg := srv.ClientConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.Driver = "memory"
	cfg.Cache.IntrospectionTTL = time.Minute
	c, err := api.New(cfg)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	req := &dto.IntrospectionRequest{Token: "tok-cached", Scopes: []string{"openid"}}

	first, err := c.Introspection(ctx, req)
	require.NoError(t, err)
	require.Equal(t, dto.IntrospectionOK, first.Action)
	require.Equal(t, "user123", first.Subject)

	second, err := c.Introspection(ctx, req)
	require.NoError(t, err)
	require.Equal(t, dto.IntrospectionOK, second.Action)

	require.Equal(t, 1, srv.IntrospectionCalls, "la segunda llamada debe salir del cache")
}

func TestIntrospection_InsufficientScopes(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.SeedToken("tok-scopes", "user123", 42, []string{"openid"}, time.Hour)
	c := newClient(t, srv)

	resp, err := c.Introspection(context.Background(), &dto.IntrospectionRequest{
		Token:  "tok-scopes",
		Scopes: []string{"openid", "payments"},
	})
	require.NoError(t, err)
	require.Equal(t, dto.IntrospectionForbidden, resp.Action)
	require.True(t, resp.Existent)
	require.True(t, resp.Usable)
	require.False(t, resp.Sufficient)
}

func TestRevocation(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.SeedToken("tok-revoke", "user123", 42, []string{"openid"}, time.Hour)
	c := newClient(t, srv)
	ctx := context.Background()

	rev, err := c.Revocation(ctx, &dto.RevocationRequest{Parameters: "token=tok-revoke"})
	require.NoError(t, err)
	require.Equal(t, dto.RevocationOK, rev.Action)

	after, err := c.Introspection(ctx, &dto.IntrospectionRequest{Token: "tok-revoke"})
	require.NoError(t, err)
	require.Equal(t, dto.IntrospectionUnauthorized, after.Action)
	require.False(t, after.Existent)
}

func TestStandardIntrospection(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.SeedToken("tok-std", "user123", 42, []string{"openid"}, time.Hour)
	c := newClient(t, srv)

	resp, err := c.StandardIntrospection(context.Background(), &dto.StandardIntrospectionRequest{
		Parameters: "token=tok-std",
	})
	require.NoError(t, err)
	require.Equal(t, dto.StandardIntrospectionOK, resp.Action)
	require.Contains(t, resp.ResponseContent, `"active":true`)
	require.Contains(t, resp.ResponseContent, `"sub":"user123"`)
}

func TestTokenCreateAndUpdate(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	created, err := c.TokenCreate(ctx, &dto.TokenCreateRequest{
		GrantType: dto.GrantClientCredentials,
		ClientID:  42,
		Scopes:    []string{"reports"},
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenCreateOK, created.Action)
	require.NotEmpty(t, created.AccessToken)
	require.Equal(t, "Bearer", created.TokenType)

	updated, err := c.TokenUpdate(ctx, &dto.TokenUpdateRequest{
		AccessToken: created.AccessToken,
		Scopes:      []string{"reports", "admin"},
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenUpdateOK, updated.Action)
	require.Equal(t, []string{"reports", "admin"}, updated.Scopes)

	missing, err := c.TokenUpdate(ctx, &dto.TokenUpdateRequest{AccessToken: "nope"})
	require.NoError(t, err)
	require.Equal(t, dto.TokenUpdateNotFound, missing.Action)
}

func TestPushedAuthorizationRequest(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	cli := registerClient(t, c)
	pushed, err := c.PushAuthorizationRequest(ctx, &dto.PushedAuthReqRequest{
		Parameters: "response_type=code&client_id=" + itoa(cli.ClientID) +
			"&redirect_uri=https%3A%2F%2Fapp.example.com%2Fcb&scope=openid",
		ClientID: itoa(cli.ClientID),
	})
	require.NoError(t, err)
	require.Equal(t, dto.PushedAuthReqCreated, pushed.Action)
	require.True(t, strings.HasPrefix(pushed.RequestURI, "urn:ietf:params:oauth:request_uri:"))

	// El request_uri reemplaza los parámetros en /auth/authorization
	authz, err := c.Authorization(ctx, &dto.AuthorizationRequest{
		Parameters: "client_id=" + itoa(cli.ClientID) + "&request_uri=" + pushed.RequestURI,
	})
	require.NoError(t, err)
	require.Equal(t, dto.AuthorizationInteraction, authz.Action)
	require.Len(t, authz.Scopes, 1)
	require.Equal(t, "openid", authz.Scopes[0].Name)
}

func TestCIBAFlow(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	cli := registerClient(t, c)
	bc, err := c.BackchannelAuthentication(ctx, &dto.BackchannelAuthenticationRequest{
		Parameters: "scope=openid&login_hint=user123",
		ClientID:   itoa(cli.ClientID),
	})
	require.NoError(t, err)
	require.Equal(t, dto.BackchannelAuthenticationUserIdentification, bc.Action)
	require.Equal(t, "LOGIN_HINT", bc.HintType)
	require.Equal(t, "user123", bc.Hint)

	issued, err := c.BackchannelAuthenticationIssue(ctx, &dto.BackchannelAuthenticationIssueRequest{Ticket: bc.Ticket})
	require.NoError(t, err)
	require.Equal(t, dto.BackchannelAuthenticationIssueOK, issued.Action)
	require.NotEmpty(t, issued.AuthReqID)

	// el cliente hace polling antes de que el usuario autorice
	pending, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=urn:openid:params:grant-type:ciba&auth_req_id=" + issued.AuthReqID,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenBadRequest, pending.Action)
	require.Contains(t, pending.ResponseContent, "authorization_pending")

	done, err := c.BackchannelAuthenticationComplete(ctx, &dto.BackchannelAuthenticationCompleteRequest{
		Ticket:  bc.Ticket,
		Result:  dto.BcCompleteAuthorized,
		Subject: "user123",
	})
	require.NoError(t, err)
	require.Equal(t, dto.BcCompleteActionNoAction, done.Action)

	tok, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=urn:openid:params:grant-type:ciba&auth_req_id=" + issued.AuthReqID,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenOK, tok.Action)
	require.Equal(t, "user123", tok.Subject)
	require.Equal(t, dto.GrantCIBA, tok.GrantType)
}

func TestDeviceFlow(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	cli := registerClient(t, c)
	dev, err := c.DeviceAuthorization(ctx, &dto.DeviceAuthorizationRequest{
		Parameters: "scope=openid",
		ClientID:   itoa(cli.ClientID),
	})
	require.NoError(t, err)
	require.Equal(t, dto.DeviceAuthorizationOK, dev.Action)
	require.NotEmpty(t, dev.DeviceCode)
	require.NotEmpty(t, dev.UserCode)

	ver, err := c.DeviceVerification(ctx, &dto.DeviceVerificationRequest{UserCode: dev.UserCode})
	require.NoError(t, err)
	require.Equal(t, dto.DeviceVerificationValid, ver.Action)
	require.Equal(t, cli.ClientID, ver.ClientID)

	pending, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=urn:ietf:params:oauth:grant-type:device_code&device_code=" + dev.DeviceCode,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenBadRequest, pending.Action)

	done, err := c.DeviceComplete(ctx, &dto.DeviceCompleteRequest{
		UserCode: dev.UserCode,
		Result:   dto.DeviceCompleteAuthorized,
		Subject:  "user123",
	})
	require.NoError(t, err)
	require.Equal(t, dto.DeviceCompleteActionSuccess, done.Action)

	tok, err := c.Token(ctx, &dto.TokenRequest{
		Parameters: "grant_type=urn:ietf:params:oauth:grant-type:device_code&device_code=" + dev.DeviceCode,
	})
	require.NoError(t, err)
	require.Equal(t, dto.TokenOK, tok.Action)
	require.Equal(t, dto.GrantDeviceCode, tok.GrantType)
}

func TestGrantManagement(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.AddGrant("grant-1", &dto.Grant{
		Scopes: []dto.GrantScope{{Scope: "openid profile"}},
		Claims: []string{"given_name"},
	})
	c := newClient(t, srv)
	ctx := context.Background()

	q, err := c.GrantManagement(ctx, &dto.GMRequest{GMAction: dto.GMActionQuery, GrantID: "grant-1"})
	require.NoError(t, err)
	require.Equal(t, dto.GMOK, q.Action)
	require.Contains(t, q.ResponseContent, "openid profile")

	rev, err := c.GrantManagement(ctx, &dto.GMRequest{GMAction: dto.GMActionRevoke, GrantID: "grant-1"})
	require.NoError(t, err)
	require.Equal(t, dto.GMNoContent, rev.Action)

	gone, err := c.GrantManagement(ctx, &dto.GMRequest{GMAction: dto.GMActionQuery, GrantID: "grant-1"})
	require.NoError(t, err)
	require.Equal(t, dto.GMNotFound, gone.Action)
}

func TestServiceCRUD(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	created, err := c.ServiceCreate(ctx, &dto.Service{
		ServiceName:     "demo",
		Issuer:          "https://demo.example.com",
		SupportedScopes: []dto.Scope{{Name: "openid"}, {Name: "profile"}},
	})
	require.NoError(t, err)
	require.NotZero(t, created.APIKey)
	require.NotEmpty(t, created.APISecret)

	got, err := c.ServiceGet(ctx, created.APIKey)
	require.NoError(t, err)
	require.Equal(t, "demo", got.ServiceName)

	got.Description = "updated"
	updated, err := c.ServiceUpdate(ctx, created.APIKey, got)
	require.NoError(t, err)
	require.Equal(t, "updated", updated.Description)

	list, err := c.ServiceList(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)

	require.NoError(t, c.ServiceDelete(ctx, created.APIKey))

	_, err = c.ServiceGet(ctx, created.APIKey)
	require.True(t, api.IsNotFound(err))
}

func TestServiceCreate_RejectsBadScopeName(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)

	_, err := c.ServiceCreate(context.Background(), &dto.Service{
		ServiceName:     "demo",
		SupportedScopes: []dto.Scope{{Name: "Invalid Scope!"}},
	})
	require.Error(t, err)
	ae, ok := api.AsError(err)
	require.True(t, ok)
	require.Equal(t, 400, ae.Status)
	require.Equal(t, "A001204", ae.ResultCode)
}

func TestClientCRUD(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	created := registerClient(t, c)

	got, err := c.ClientGet(ctx, created.ClientID)
	require.NoError(t, err)
	require.Equal(t, "test-app", got.ClientName)

	got.ClientName = "renamed"
	updated, err := c.ClientUpdate(ctx, got)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.ClientName)

	list, err := c.ClientList(ctx, "", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)

	require.NoError(t, c.ClientDelete(ctx, created.ClientID))
	_, err = c.ClientGet(ctx, created.ClientID)
	require.True(t, api.IsNotFound(err))
}

func TestRetry_RecoversFrom5xx(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.SeedToken("tok-retry", "user123", 42, nil, time.Hour)
	c := newClient(t, srv)

	srv.FailNext(500)
	resp, err := c.Introspection(context.Background(), &dto.IntrospectionRequest{Token: "tok-retry"})
	require.NoError(t, err, "un 500 aislado debe reintentar y pasar")
	require.Equal(t, dto.IntrospectionOK, resp.Action)
}

func TestRetry_DoesNotRetry4xx(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	c := newClient(t, srv)

	_, err := c.ClientGet(context.Background(), 999999)
	require.Error(t, err)
	require.True(t, api.IsNotFound(err))

	// un solo 404 en el contador del server: sin reintentos
	ae, _ := api.AsError(err)
	require.Equal(t, "A001301", ae.ResultCode)
}

func TestRetry_NegativeMaxAttemptsMeansSingleTry(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()
	srv.SeedToken("tok-neg", "user123", 42, nil, time.Hour)

	cfg := srv.ClientConfig()
	cfg.Retry.MaxAttempts = -5
	c, err := api.New(cfg)
	require.NoError(t, err)
	defer c.Close()

	// Con un valor negativo no debe haber reintentos: el 500 inyectado
	// llega tal cual al caller.
	srv.FailNext(500)
	_, err = c.Introspection(context.Background(), &dto.IntrospectionRequest{Token: "tok-neg"})
	require.Error(t, err)
	ae, ok := api.AsError(err)
	require.True(t, ok)
	require.Equal(t, 500, ae.Status)
}

func TestUnauthorizedCredentials(t *testing.T) {
	srv := authletetest.New()
	defer srv.Close()

	cfg := srv.ClientConfig()
	cfg.ServiceAPISecret = "wrong"
	c, err := api.New(cfg)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Introspection(context.Background(), &dto.IntrospectionRequest{Token: "x"})
	require.True(t, api.IsUnauthorized(err))
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
