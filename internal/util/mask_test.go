package util

import "testing"

func TestMaskToken(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "***"},
		{"12345678", "***"},
		{"UhK25Pp1G5BJHloP6EJS7zHxHIGyygGn", "UhK2…Gn"},
	}
	for _, c := range cases {
		if got := MaskToken(c.in); got != c.want {
			t.Fatalf("MaskToken(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMaskSecret_NeverEchoes(t *testing.T) {
	secret := "super-secret-value"
	got := MaskSecret(secret)
	if got == secret {
		t.Fatalf("secret leaked: %q", got)
	}
	if len(got) != 8 {
		t.Fatalf("unexpected mask shape: %q", got)
	}
}
