// Package conf carga la configuración del SDK: URL base del backend,
// credenciales del servicio y del service owner, timeouts, retry y cache.
//
// Precedencia: archivo YAML explícito > variables de entorno (con soporte
// .env via godotenv) > defaults. Los secretos pueden guardarse cifrados en el
// YAML (campos *_enc, formato de internal/secretbox).
package conf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/authlete-go/internal/secretbox"
)

// Defaults.
const (
	DefaultBaseURL = "https://api.authlete.com"
	DefaultTimeout = 30 * time.Second
)

// Configuration agrupa todo lo que api.New necesita.
type Configuration struct {
	// BaseURL es la URL base del backend (ej: https://api.authlete.com).
	BaseURL string `yaml:"base_url"`

	// Credenciales del service owner (endpoints de gestión de servicios).
	ServiceOwnerAPIKey       string `yaml:"service_owner_api_key"`
	ServiceOwnerAPISecret    string `yaml:"service_owner_api_secret"`
	ServiceOwnerAPISecretEnc string `yaml:"service_owner_api_secret_enc"`

	// Credenciales del servicio (todos los demás endpoints).
	ServiceAPIKey       string `yaml:"service_api_key"`
	ServiceAPISecret    string `yaml:"service_api_secret"`
	ServiceAPISecretEnc string `yaml:"service_api_secret_enc"`

	// TimeoutStr es el timeout por request como duración ("30s", "1m").
	// Vacío => DefaultTimeout. El valor parseado queda en Timeout.
	TimeoutStr string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`

	Retry struct {
		// MaxAttempts incluye el intento inicial. 0 => 3.
		MaxAttempts int `yaml:"max_attempts"`
		// Disabled apaga los reintentos por completo.
		Disabled bool `yaml:"disabled"`
	} `yaml:"retry"`

	Cache struct {
		// Enabled habilita el cache de introspección.
		Enabled  bool   `yaml:"enabled"`
		Driver   string `yaml:"driver"` // memory | redis
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
		// IntrospectionTTLStr es el TTL de cada resultado ("30s").
		// Vacío => 30s. El valor parseado queda en IntrospectionTTL.
		IntrospectionTTLStr string        `yaml:"introspection_ttl"`
		IntrospectionTTL    time.Duration `yaml:"-"`
	} `yaml:"cache"`

	Log struct {
		Env   string `yaml:"env"`   // dev | prod
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// LoadFile lee un YAML, aplica overrides de entorno y resuelve secretos.
func LoadFile(path string) (*Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("conf: read %s: %w", path, err)
	}
	var cfg Configuration
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("conf: parse %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadEnv construye la configuración solo desde el entorno (.env incluido).
func LoadEnv() (*Configuration, error) {
	// .env es best-effort: en producción las vars vienen del entorno real.
	_ = godotenv.Load()

	var cfg Configuration
	cfg.applyEnv()
	if err := cfg.resolveSecrets(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv pisa los campos con AUTHLETE_* cuando están presentes.
func (c *Configuration) applyEnv() {
	setStr := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setStr(&c.BaseURL, "AUTHLETE_BASE_URL")
	setStr(&c.ServiceOwnerAPIKey, "AUTHLETE_SO_API_KEY")
	setStr(&c.ServiceOwnerAPISecret, "AUTHLETE_SO_API_SECRET")
	setStr(&c.ServiceAPIKey, "AUTHLETE_SERVICE_API_KEY")
	setStr(&c.ServiceAPISecret, "AUTHLETE_SERVICE_API_SECRET")
	setStr(&c.Cache.Driver, "AUTHLETE_CACHE_DRIVER")
	setStr(&c.Cache.Addr, "AUTHLETE_CACHE_ADDR")
	setStr(&c.Cache.Password, "AUTHLETE_CACHE_PASSWORD")
	setStr(&c.Cache.Prefix, "AUTHLETE_CACHE_PREFIX")
	setStr(&c.Log.Env, "AUTHLETE_LOG_ENV")
	setStr(&c.Log.Level, "AUTHLETE_LOG_LEVEL")

	setStr(&c.TimeoutStr, "AUTHLETE_TIMEOUT")
	if v := strings.TrimSpace(os.Getenv("AUTHLETE_CACHE_ENABLED")); v != "" {
		c.Cache.Enabled, _ = strconv.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv("AUTHLETE_METRICS_ENABLED")); v != "" {
		c.Metrics.Enabled, _ = strconv.ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv("AUTHLETE_RETRY_MAX_ATTEMPTS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = n
		}
	}
}

// resolveSecrets descifra los campos *_enc. Un campo _enc presente gana sobre
// su par en claro.
func (c *Configuration) resolveSecrets() error {
	if c.ServiceAPISecretEnc != "" {
		pt, err := secretbox.Decrypt(c.ServiceAPISecretEnc)
		if err != nil {
			return fmt.Errorf("conf: decrypt service_api_secret_enc: %w", err)
		}
		c.ServiceAPISecret = pt
	}
	if c.ServiceOwnerAPISecretEnc != "" {
		pt, err := secretbox.Decrypt(c.ServiceOwnerAPISecretEnc)
		if err != nil {
			return fmt.Errorf("conf: decrypt service_owner_api_secret_enc: %w", err)
		}
		c.ServiceOwnerAPISecret = pt
	}
	return nil
}

func (c *Configuration) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	c.Timeout = parseDurationOr(c.TimeoutStr, DefaultTimeout)
	c.Cache.IntrospectionTTL = parseDurationOr(c.Cache.IntrospectionTTLStr, 30*time.Second)

	// Valores negativos (env mal escrita) caen al default igual que 0.
	if c.Retry.MaxAttempts < 1 {
		c.Retry.MaxAttempts = 3
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
}

func parseDurationOr(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Validate chequea lo mínimo para poder llamar a la API.
func (c *Configuration) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("conf: base_url vacía")
	}
	if c.ServiceAPIKey == "" || c.ServiceAPISecret == "" {
		return fmt.Errorf("conf: faltan credenciales del servicio (service_api_key / service_api_secret)")
	}
	return nil
}
