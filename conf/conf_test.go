package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/authlete-go/internal/secretbox"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authlete.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Basic(t *testing.T) {
	path := writeYAML(t, `
base_url: https://api.example.authlete.com/
service_api_key: "21653835348762"
service_api_secret: "secret"
timeout: 5s
cache:
  enabled: true
  driver: memory
  introspection_ttl: 10s
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	// Trailing slash removed, defaults applied
	require.Equal(t, "https://api.example.authlete.com", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, 3, cfg.Retry.MaxAttempts)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 10*time.Second, cfg.Cache.IntrospectionTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := writeYAML(t, `
service_api_key: "from-yaml"
service_api_secret: "from-yaml"
`)
	t.Setenv("AUTHLETE_SERVICE_API_KEY", "from-env")
	t.Setenv("AUTHLETE_TIMEOUT", "7s")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.ServiceAPIKey)
	require.Equal(t, "from-yaml", cfg.ServiceAPISecret)
	require.Equal(t, 7*time.Second, cfg.Timeout)
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadEnv_NegativeRetryFallsBackToDefault(t *testing.T) {
	t.Setenv("AUTHLETE_SERVICE_API_KEY", "k")
	t.Setenv("AUTHLETE_SERVICE_API_SECRET", "s")
	t.Setenv("AUTHLETE_RETRY_MAX_ATTEMPTS", "-5")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestLoadFile_EncryptedSecret(t *testing.T) {
	require.NoError(t, secretbox.UnsafeSetMasterKeyForTests([]byte("0123456789abcdef0123456789abcdef")))
	t.Cleanup(secretbox.UnsafeResetForTests)

	enc, err := secretbox.Encrypt("real-secret")
	require.NoError(t, err)

	path := writeYAML(t, `
service_api_key: "k"
service_api_secret_enc: "`+enc+`"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "real-secret", cfg.ServiceAPISecret)
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := &Configuration{}
	cfg.applyDefaults()
	require.Error(t, cfg.Validate())
}
