package dto

import (
	"strings"
	"testing"
)

func TestAuthorizationResponse_Summarize(t *testing.T) {
	r := &AuthorizationResponse{
		Action:  AuthorizationInteraction,
		Service: &Service{ServiceName: "demo"},
		Client:  &Client{ClientID: 26478243745571, ClientName: "my-app"},
		Subject: "user123",
		Scopes:  []Scope{{Name: "openid"}, {Name: "profile"}},
		Prompts: []Prompt{PromptConsent},
		Ticket:  "c4iy3TWGn74UMO7ihRl0ZS8OEXzV",
	}
	s := r.Summarize()
	for _, want := range []string{
		"action=INTERACTION",
		"service=demo",
		"client=26478243745571 (my-app)",
		"scopes=openid profile",
		"prompts=CONSENT",
		"ticket=c4iy3TWGn74UMO7ihRl0ZS8OEXzV",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary %q missing %q", s, want)
		}
	}
}

func TestAuthorizationResponse_Summarize_NilMembers(t *testing.T) {
	r := &AuthorizationResponse{Action: AuthorizationBadRequest}
	// No debe entrar en pánico con client/service nil
	if s := r.Summarize(); !strings.Contains(s, "action=BAD_REQUEST") {
		t.Fatalf("got %q", s)
	}
}

func TestTokenResponse_Summarize_MasksTokens(t *testing.T) {
	r := &TokenResponse{
		Action:       TokenOK,
		GrantType:    GrantAuthorizationCode,
		ClientID:     42,
		Subject:      "user123",
		AccessToken:  "Z6DUvh8JBHmnTgfhr0ZHppLHLuc96bRjX1mNLKdvM2o",
		RefreshToken: "v63MBdPbkQb6lLGdrzTa41cBJxSITTeLEWFdzYaRU44",
	}
	s := r.Summarize()
	if strings.Contains(s, "Z6DUvh8JBHmnTgfhr0ZHppLHLuc96bRjX1mNLKdvM2o") {
		t.Fatalf("access token leaked: %q", s)
	}
	if strings.Contains(s, "v63MBdPbkQb6lLGdrzTa41cBJxSITTeLEWFdzYaRU44") {
		t.Fatalf("refresh token leaked: %q", s)
	}
	if !strings.Contains(s, "accessToken=Z6DU…2o") {
		t.Fatalf("expected masked token in %q", s)
	}
}

func TestIntrospectionResponse_Summarize(t *testing.T) {
	r := &IntrospectionResponse{
		Action:   IntrospectionOK,
		ClientID: 7,
		Subject:  "user123",
		Scopes:   []string{"openid"},
		Existent: true,
		Usable:   true,
	}
	s := r.Summarize()
	for _, want := range []string{"action=OK", "existent=true", "usable=true", "sufficient=false"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary %q missing %q", s, want)
		}
	}
}

func TestBackchannelAuthenticationResponse_Summarize(t *testing.T) {
	r := &BackchannelAuthenticationResponse{
		Action:       BackchannelAuthenticationUserIdentification,
		ClientID:     9,
		ClientName:   "ciba-app",
		DeliveryMode: DeliveryPoll,
		HintType:     "LOGIN_HINT",
		Scopes:       []Scope{{Name: "openid"}},
		Ticket:       "tkt",
	}
	s := r.Summarize()
	for _, want := range []string{"action=USER_IDENTIFICATION", "deliveryMode=POLL", "hintType=LOGIN_HINT"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary %q missing %q", s, want)
		}
	}
}
