// Package idtoken verifica ID tokens emitidos por un servicio: firma RS256
// contra el JWKS publicado, issuer, audience, nonce y expiración.
//
// Pensado para el lado relying-party de los flujos: después de canjear un
// code (o un auth_req_id CIBA) el caller valida el id_token recibido antes de
// confiar en sus claims.
package idtoken

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"` // base64url
	E   string `json:"e"` // base64url
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

// Verifier valida ID tokens de un issuer concreto. Cachea el JWKS con TTL y
// revalida con ETag para no descargar el documento en cada verificación.
type Verifier struct {
	// Issuer es el valor exacto esperado en el claim iss.
	Issuer string

	// JwksURI es la URL del JWKS del servicio.
	JwksURI string

	// Audience es el client_id esperado en aud.
	Audience string

	// ClockSkew es la tolerancia al validar exp/iat. Default 30s.
	ClockSkew time.Duration

	// JWKSTTL controla cada cuánto se refresca el JWKS. Default 1h.
	JWKSTTL time.Duration

	http *http.Client

	mu       sync.RWMutex
	jwks     *jwks
	jwksAt   time.Time
	jwksETag string
}

// New crea un Verifier con un http.Client propio.
func New(issuer, jwksURI, audience string) *Verifier {
	return &Verifier{
		Issuer:   issuer,
		JwksURI:  jwksURI,
		Audience: audience,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient reemplaza el cliente HTTP (tests).
func (v *Verifier) WithHTTPClient(h *http.Client) *Verifier {
	v.http = h
	return v
}

func (v *Verifier) ttl() time.Duration {
	if v.JWKSTTL > 0 {
		return v.JWKSTTL
	}
	return time.Hour
}

func (v *Verifier) skew() time.Duration {
	if v.ClockSkew > 0 {
		return v.ClockSkew
	}
	return 30 * time.Second
}

func (v *Verifier) getJWKS(ctx context.Context) (*jwks, error) {
	v.mu.RLock()
	j := v.jwks
	age := time.Since(v.jwksAt)
	etag := v.jwksETag
	v.mu.RUnlock()
	if j != nil && age < v.ttl() {
		return j, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.JwksURI, nil)
	if err != nil {
		return nil, err
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	resp, err := v.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		v.mu.Lock()
		out := v.jwks
		v.jwksAt = time.Now()
		v.mu.Unlock()
		return out, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("idtoken: jwks http %d", resp.StatusCode)
	}

	var jj jwks
	if err := json.NewDecoder(resp.Body).Decode(&jj); err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.jwks = &jj
	v.jwksAt = time.Now()
	v.jwksETag = resp.Header.Get("ETag")
	v.mu.Unlock()
	return &jj, nil
}

func (v *Verifier) rsaKeyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	keys, err := v.getJWKS(ctx)
	if err != nil {
		return nil, err
	}
	for _, k := range keys.Keys {
		if k.Kid == kid && strings.EqualFold(k.Kty, "RSA") {
			nb, err := base64.RawURLEncoding.DecodeString(k.N)
			if err != nil {
				return nil, err
			}
			eb, err := base64.RawURLEncoding.DecodeString(k.E)
			if err != nil {
				return nil, err
			}
			n := new(big.Int).SetBytes(nb)
			e := 0
			if len(eb) == 0 {
				e = 65537
			} else {
				for _, b := range eb {
					e = (e << 8) | int(b)
				}
			}
			return &rsa.PublicKey{N: n, E: e}, nil
		}
	}
	return nil, errors.New("idtoken: kid not found in jwks")
}

// Claims son los claims estándar del ID token ya validados.
type Claims struct {
	Subject  string
	Issuer   string
	Audience []string
	Nonce    string
	AuthTime int64
	ACR      string
	IssuedAt time.Time
	Expires  time.Time

	// Raw expone el resto de los claims tal cual vinieron.
	Raw jwtv5.MapClaims
}

// Verify valida firma, iss, aud, nonce y exp. expectedNonce vacío saltea el
// chequeo de nonce.
func (v *Verifier) Verify(ctx context.Context, idToken, expectedNonce string) (*Claims, error) {
	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, errors.New("idtoken: malformed jwt")
	}
	hb, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hb, &header); err != nil {
		return nil, err
	}
	if header.Alg != "RS256" {
		return nil, fmt.Errorf("idtoken: unexpected alg %q", header.Alg)
	}

	key, err := v.rsaKeyForKid(ctx, header.Kid)
	if err != nil {
		return nil, err
	}
	tok, err := jwtv5.Parse(idToken,
		func(t *jwtv5.Token) (any, error) { return key, nil },
		jwtv5.WithValidMethods([]string{"RS256"}),
		jwtv5.WithLeeway(v.skew()),
	)
	if err != nil || !tok.Valid {
		return nil, errors.New("idtoken: invalid signature or claims")
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, errors.New("idtoken: unexpected claims type")
	}

	iss, _ := claims["iss"].(string)
	if iss != v.Issuer {
		return nil, fmt.Errorf("idtoken: bad iss %q", iss)
	}

	var auds []string
	audOK := false
	switch a := claims["aud"].(type) {
	case string:
		auds = []string{a}
		audOK = a == v.Audience
	case []any:
		for _, item := range a {
			if s, _ := item.(string); s != "" {
				auds = append(auds, s)
				if s == v.Audience {
					audOK = true
				}
			}
		}
	}
	if !audOK {
		return nil, errors.New("idtoken: bad aud")
	}

	if expectedNonce != "" {
		if got, _ := claims["nonce"].(string); got != expectedNonce {
			return nil, errors.New("idtoken: bad nonce")
		}
	}

	out := &Claims{
		Raw:      claims,
		Issuer:   iss,
		Audience: auds,
	}
	out.Subject, _ = claims["sub"].(string)
	out.Nonce, _ = claims["nonce"].(string)
	out.ACR, _ = claims["acr"].(string)
	if f, ok := claims["auth_time"].(float64); ok {
		out.AuthTime = int64(f)
	}
	if f, ok := claims["iat"].(float64); ok {
		out.IssuedAt = time.Unix(int64(f), 0)
	}
	if f, ok := claims["exp"].(float64); ok {
		out.Expires = time.Unix(int64(f), 0)
	}
	return out, nil
}
