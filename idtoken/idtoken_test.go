package idtoken

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testKid = "key-1"

func newJWKSServer(t *testing.T, pub *rsa.PublicKey, fullFetches *int32) *httptest.Server {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"alg": "RS256",
			"kid": testKid,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString([]byte{1, 0, 1}),
		}},
	}
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	const etag = `"v1"`
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		atomic.AddInt32(fullFetches, 1)
		w.Header().Set("ETag", etag)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwtv5.MapClaims) string {
	t.Helper()
	tok := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	tok.Header["kid"] = testKid
	signed, err := tok.SignedString(key)
	require.NoError(t, err)
	return signed
}

func baseClaims(issuer string) jwtv5.MapClaims {
	now := time.Now()
	return jwtv5.MapClaims{
		"iss":   issuer,
		"aud":   "26478243745571",
		"sub":   "user123",
		"nonce": "n-0S6_WzA2Mj",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestVerify_OK(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	var fetches int32
	srv := newJWKSServer(t, &key.PublicKey, &fetches)
	defer srv.Close()

	v := New("https://demo.example.com", srv.URL, "26478243745571")
	claims, err := v.Verify(context.Background(), signToken(t, key, baseClaims("https://demo.example.com")), "n-0S6_WzA2Mj")
	require.NoError(t, err)
	require.Equal(t, "user123", claims.Subject)
	require.Equal(t, "https://demo.example.com", claims.Issuer)
	require.Equal(t, []string{"26478243745571"}, claims.Audience)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires, time.Minute)
}

func TestVerify_JWKSCachedAcrossCalls(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	var fetches int32
	srv := newJWKSServer(t, &key.PublicKey, &fetches)
	defer srv.Close()

	v := New("https://demo.example.com", srv.URL, "26478243745571")
	tok := signToken(t, key, baseClaims("https://demo.example.com"))

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), tok, "")
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestVerify_ETagRevalidation(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	var fetches int32
	srv := newJWKSServer(t, &key.PublicKey, &fetches)
	defer srv.Close()

	v := New("https://demo.example.com", srv.URL, "26478243745571")
	v.JWKSTTL = time.Nanosecond // fuerza revalidación en cada llamada
	tok := signToken(t, key, baseClaims("https://demo.example.com"))

	for i := 0; i < 3; i++ {
		_, err := v.Verify(context.Background(), tok, "")
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	// Después del primer fetch completo, todo es 304
	require.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestVerify_ConcurrentRefresh(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	var fetches int32
	srv := newJWKSServer(t, &key.PublicKey, &fetches)
	defer srv.Close()

	v := New("https://demo.example.com", srv.URL, "26478243745571")
	v.JWKSTTL = time.Nanosecond // todas las llamadas entran al camino de refresh
	tok := signToken(t, key, baseClaims("https://demo.example.com"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, err := v.Verify(ctx, tok, ""); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestVerify_Rejections(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	var fetches int32
	srv := newJWKSServer(t, &key.PublicKey, &fetches)
	defer srv.Close()

	v := New("https://demo.example.com", srv.URL, "26478243745571")
	ctx := context.Background()

	t.Run("wrong issuer", func(t *testing.T) {
		tok := signToken(t, key, baseClaims("https://evil.example.com"))
		_, err := v.Verify(ctx, tok, "")
		require.ErrorContains(t, err, "bad iss")
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := baseClaims("https://demo.example.com")
		claims["aud"] = "someone-else"
		_, err := v.Verify(ctx, signToken(t, key, claims), "")
		require.ErrorContains(t, err, "bad aud")
	})

	t.Run("audience list accepted", func(t *testing.T) {
		claims := baseClaims("https://demo.example.com")
		claims["aud"] = []string{"other", "26478243745571"}
		got, err := v.Verify(ctx, signToken(t, key, claims), "")
		require.NoError(t, err)
		require.Len(t, got.Audience, 2)
	})

	t.Run("wrong nonce", func(t *testing.T) {
		tok := signToken(t, key, baseClaims("https://demo.example.com"))
		_, err := v.Verify(ctx, tok, "expected-something-else")
		require.ErrorContains(t, err, "bad nonce")
	})

	t.Run("expired", func(t *testing.T) {
		claims := baseClaims("https://demo.example.com")
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		_, err := v.Verify(ctx, signToken(t, key, claims), "")
		require.Error(t, err)
	})

	t.Run("signed with another key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Verify(ctx, signToken(t, other, baseClaims("https://demo.example.com")), "")
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := v.Verify(ctx, "not-a-jwt", "")
		require.Error(t, err)
	})
}
