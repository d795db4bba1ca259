package secretbox

import (
	"strings"
	"testing"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(UnsafeResetForTests)

	ct, err := Encrypt("my-service-api-secret")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !strings.Contains(ct, sep) {
		t.Fatalf("missing separator in %q", ct)
	}
	if strings.Contains(ct, "my-service") {
		t.Fatal("plaintext leaked into ciphertext")
	}

	pt, err := Decrypt(ct)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if pt != "my-service-api-secret" {
		t.Fatalf("got %q", pt)
	}
}

func TestDecryptWithKey(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(UnsafeResetForTests)

	ct, err := Encrypt("rotate-me")
	if err != nil {
		t.Fatal(err)
	}

	pt, err := DecryptWithKey(testKey(), ct)
	if err != nil {
		t.Fatalf("decrypt with explicit key: %v", err)
	}
	if pt != "rotate-me" {
		t.Fatalf("got %q", pt)
	}

	other := []byte("ffffffffffffffffffffffffffffffff")
	if _, err := DecryptWithKey(other, ct); err == nil {
		t.Fatal("expected auth failure with wrong key")
	}
	if _, err := DecryptWithKey([]byte("short"), ct); err == nil {
		t.Fatal("expected error for short key")
	}
}

func TestDecrypt_RejectsGarbage(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(UnsafeResetForTests)

	for _, in := range []string{"", "no-separator", "a|b|c", "!!!|???"} {
		if _, err := Decrypt(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestDecrypt_AuthFailureOnTamper(t *testing.T) {
	if err := UnsafeSetMasterKeyForTests(testKey()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(UnsafeResetForTests)

	ct, err := Encrypt("secret")
	if err != nil {
		t.Fatal(err)
	}
	// Flip a char in the ciphertext half
	parts := strings.SplitN(ct, sep, 2)
	body := []byte(parts[1])
	if body[0] == 'A' {
		body[0] = 'B'
	} else {
		body[0] = 'A'
	}
	if _, err := Decrypt(parts[0] + sep + string(body)); err == nil {
		t.Fatal("expected auth failure after tamper")
	}
}
