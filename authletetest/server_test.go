package authletetest

import (
	"net/http"
	"strings"
	"testing"
)

func post(t *testing.T, srv *Server, path, user, pass, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.SetBasicAuth(user, pass)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestRequireBasic(t *testing.T) {
	srv := New()
	defer srv.Close()

	resp := post(t, srv, "/api/auth/introspection", srv.ServiceAPIKey, "wrong", `{}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	// Las credenciales del servicio no sirven para endpoints de owner
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/service/get/list", nil)
	req.SetBasicAuth(srv.ServiceAPIKey, srv.ServiceAPISecret)
	r2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	r2.Body.Close()
	if r2.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", r2.StatusCode)
	}
}

func TestFailNextIsFIFO(t *testing.T) {
	srv := New()
	defer srv.Close()
	srv.FailNext(503)
	srv.FailNext(500)

	r1 := post(t, srv, "/api/auth/introspection", srv.ServiceAPIKey, srv.ServiceAPISecret, `{"token":"x"}`)
	r1.Body.Close()
	if r1.StatusCode != 503 {
		t.Fatalf("first = %d, want 503", r1.StatusCode)
	}
	r2 := post(t, srv, "/api/auth/introspection", srv.ServiceAPIKey, srv.ServiceAPISecret, `{"token":"x"}`)
	r2.Body.Close()
	if r2.StatusCode != 500 {
		t.Fatalf("second = %d, want 500", r2.StatusCode)
	}
	r3 := post(t, srv, "/api/auth/introspection", srv.ServiceAPIKey, srv.ServiceAPISecret, `{"token":"x"}`)
	r3.Body.Close()
	if r3.StatusCode != http.StatusOK {
		t.Fatalf("third = %d, want 200", r3.StatusCode)
	}
}
