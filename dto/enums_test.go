package dto

import "testing"

func TestParseGrantType(t *testing.T) {
	cases := []struct {
		in   string
		want GrantType
	}{
		{"AUTHORIZATION_CODE", GrantAuthorizationCode},
		{"authorization_code", GrantAuthorizationCode},
		{"refresh_token", GrantRefreshToken},
		{"urn:openid:params:grant-type:ciba", GrantCIBA},
		{"urn:ietf:params:oauth:grant-type:device_code", GrantDeviceCode},
		{"urn:ietf:params:oauth:grant-type:token-exchange", GrantTokenExchange},
		{"client_credentials", GrantClientCredentials},
		{"nope", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ParseGrantType(c.in); got != c.want {
			t.Fatalf("ParseGrantType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGrantType_URN(t *testing.T) {
	if got := GrantCIBA.URN(); got != "urn:openid:params:grant-type:ciba" {
		t.Fatalf("got %q", got)
	}
	if got := GrantAuthorizationCode.URN(); got != "authorization_code" {
		t.Fatalf("got %q", got)
	}
	if got := GrantType("BOGUS").URN(); got != "" {
		t.Fatalf("expected empty urn for unknown grant, got %q", got)
	}
}

func TestParsePrompt(t *testing.T) {
	if got := ParsePrompt("login"); got != PromptLogin {
		t.Fatalf("got %q", got)
	}
	if got := ParsePrompt("SELECT_ACCOUNT"); got != PromptSelectAccount {
		t.Fatalf("got %q", got)
	}
	if got := ParsePrompt("bogus"); got != "" {
		t.Fatalf("got %q", got)
	}
}
