package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Excel  ExcelConfig
	Retry  RetryConfig
	SUNAT  SUNATConfig
	Report ReportConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// ExcelConfig ubicación de la plantilla de consulta.
type ExcelConfig struct {
	Path  string
	Sheet string
}

// RetryConfig política de pasadas. MaxPasses == 0 repite sin límite.
type RetryConfig struct {
	Delay     time.Duration
	MaxPasses int
}

// SUNATConfig endpoints y credenciales para el modo servidor.
// En modo plantilla las credenciales salen de C3, E3 e I3.
type SUNATConfig struct {
	TokenBaseURL string
	APIBaseURL   string
	Scope        string
	Timeout      time.Duration
	RUC          string
	ClientID     string
	ClientSecret string
}

// ReportConfig salida al terminar la validación masiva.
type ReportConfig struct {
	PDFPath      string // vacío = sin reporte
	OpenOnFinish bool
}

// JWTConfig configuración de JWT de la API local.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, EXCEL_PATH, SUNAT_CLIENT_ID, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "validador-cpe"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Excel: ExcelConfig{
			Path:  getString(v, "EXCEL_PATH", "Validador CPE Masivo.xlsx"),
			Sheet: getString(v, "EXCEL_SHEET", "Consulta"),
		},
		Retry: RetryConfig{
			Delay:     getSeconds(v, "RETRY_DELAY_SECONDS", 15),
			MaxPasses: getInt(v, "RETRY_MAX_PASSES", 0),
		},
		SUNAT: SUNATConfig{
			TokenBaseURL: getString(v, "SUNAT_TOKEN_BASE_URL", "https://api-seguridad.sunat.gob.pe"),
			APIBaseURL:   getString(v, "SUNAT_API_BASE_URL", "https://api.sunat.gob.pe"),
			Scope:        getString(v, "SUNAT_SCOPE", "https://api.sunat.gob.pe/v1/contribuyente/contribuyentes"),
			Timeout:      getSeconds(v, "SUNAT_TIMEOUT_SECONDS", 30),
			RUC:          strings.TrimSpace(getString(v, "SUNAT_RUC", "")),
			ClientID:     strings.TrimSpace(getString(v, "SUNAT_CLIENT_ID", "")),
			ClientSecret: strings.TrimSpace(getString(v, "SUNAT_CLIENT_SECRET", "")),
		},
		Report: ReportConfig{
			PDFPath:      getString(v, "REPORT_PDF_PATH", ""),
			OpenOnFinish: getBool(v, "OPEN_ON_FINISH", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "validador-cpe"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	if cfg.Retry.MaxPasses < 0 {
		return nil, fmt.Errorf("config: RETRY_MAX_PASSES no puede ser negativo (%d)", cfg.Retry.MaxPasses)
	}
	if cfg.Retry.Delay < 0 {
		return nil, fmt.Errorf("config: RETRY_DELAY_SECONDS no puede ser negativo")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getSeconds lee un entero de segundos.
func getSeconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Second
}
