package util

import "strings"

// MaskToken enmascara un access token / refresh token para logs.
// Mantiene un prefijo corto para poder correlacionar sin exponer el valor.
func MaskToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "…" + s[len(s)-2:]
}

// MaskSecret enmascara un client secret / service API secret.
// Nunca muestra contenido real, solo la longitud aproximada.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:2] + strings.Repeat("*", 6)
}
