package dto

import (
	"encoding/json"
	"strings"
	"testing"
)

// The backend is strict about member casing; these tests pin the members most
// easily broken by a refactor (acronyms and nested options).

func TestService_WireCasing(t *testing.T) {
	s := Service{
		ServiceName:                            "demo",
		APIKey:                                 21653835348762,
		Issuer:                                 "https://example.com",
		JwksURI:                                "https://example.com/jwks",
		PKCERequired:                           true,
		SupportedGrantTypes:                    []GrantType{GrantAuthorizationCode, GrantRefreshToken},
		CimdOptions:                            &CimdOptions{Enabled: true, MetadataCacheDuration: 300},
		SupportedBackchannelTokenDeliveryModes: []DeliveryMode{DeliveryPoll},
	}
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, want := range []string{
		`"serviceName":"demo"`,
		`"apiKey":21653835348762`,
		`"jwksUri":"https://example.com/jwks"`,
		`"pkceRequired":true`,
		`"supportedGrantTypes":["AUTHORIZATION_CODE","REFRESH_TOKEN"]`,
		`"cimdOptions":{"enabled":true,"metadataCacheDuration":300}`,
		`"supportedBackchannelTokenDeliveryModes":["POLL"]`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("marshaled service %s missing %s", out, want)
		}
	}
}

func TestService_OmitsZeroValues(t *testing.T) {
	b, err := json.Marshal(Service{ServiceName: "empty"})
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	for _, banned := range []string{"cimdOptions", "apiSecret", "supportedScopes", "pkceRequired"} {
		if strings.Contains(out, banned) {
			t.Fatalf("zero-value member %q not omitted: %s", banned, out)
		}
	}
}

func TestGrant_Unmarshal(t *testing.T) {
	// Shape from the Grant Management draft, as the backend returns it.
	raw := `{
	  "scopes": [
	    {"scope": "openid profile", "resource": ["https://rs.example.com"]},
	    {"scope": "payments"}
	  ],
	  "claims": ["given_name"],
	  "authorizationDetails": {
	    "elements": [{"type": "account_information", "actions": ["list_accounts"]}]
	  }
	}`
	var g Grant
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatal(err)
	}
	if len(g.Scopes) != 2 {
		t.Fatalf("scopes: %+v", g.Scopes)
	}
	if g.Scopes[0].Scope != "openid profile" || g.Scopes[0].Resource[0] != "https://rs.example.com" {
		t.Fatalf("first grant scope: %+v", g.Scopes[0])
	}
	if g.AuthorizationDetails == nil || g.AuthorizationDetails.Elements[0].Type != "account_information" {
		t.Fatalf("authorization details: %+v", g.AuthorizationDetails)
	}
}

func TestAuthorizationResponse_UnmarshalAction(t *testing.T) {
	raw := `{"resultCode":"A004001","resultMessage":"ok","action":"INTERACTION","ticket":"abc"}`
	var r AuthorizationResponse
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatal(err)
	}
	if r.Action != AuthorizationInteraction || r.Ticket != "abc" || r.ResultCode != "A004001" {
		t.Fatalf("got %+v", r)
	}
}
