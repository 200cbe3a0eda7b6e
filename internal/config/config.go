package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Meta      Meta      `mapstructure:",squash"`
	Dashboard Dashboard `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	RateLimit RateLimit `mapstructure:",squash"`
	Cache     Cache     `mapstructure:",squash"`
	Retry     Retry     `mapstructure:",squash"`
	Batch     Batch     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Meta struct {
	BaseURL     string   `mapstructure:"meta_base_url"`
	URL         string   `mapstructure:"meta_url"`
	Version     string   `mapstructure:"meta_version"`
	AppID       string   `mapstructure:"meta_app_id"`
	AppSecret   string   `mapstructure:"meta_app_secret"`
	RedirectURI string   `mapstructure:"meta_redirect_uri"`
	Scopes      []string `mapstructure:"meta_scopes"`
}

type Dashboard struct {
	// URL é o destino do redirect pós-OAuth no front-end
	URL string `mapstructure:"dashboard_url"`
}

type Auth struct {
	Secret        string        `mapstructure:"auth_secret"`
	SessionTTL    time.Duration `mapstructure:"auth_session_ttl"`
	CookieName    string        `mapstructure:"auth_cookie_name"`
	SecureCookies bool          `mapstructure:"auth_secure_cookies"`
}

type RateLimit struct {
	Window      time.Duration `mapstructure:"rate_limit_window"`
	MaxRequests int           `mapstructure:"rate_limit_max_requests"`
	MinSpacing  time.Duration `mapstructure:"rate_limit_min_spacing"`
}

type Cache struct {
	InsightTTL time.Duration `mapstructure:"cache_insight_ttl"`
	AccountTTL time.Duration `mapstructure:"cache_account_ttl"`
}

type Retry struct {
	MaxAttempts int           `mapstructure:"retry_max_attempts"`
	BaseDelay   time.Duration `mapstructure:"retry_base_delay"`
	MaxDelay    time.Duration `mapstructure:"retry_max_delay"`
	Cooldown    time.Duration `mapstructure:"retry_cooldown"`
}

type Batch struct {
	ChunkSize       int           `mapstructure:"batch_chunk_size"`
	InterChunkDelay time.Duration `mapstructure:"batch_inter_chunk_delay"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v19.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:8000/v1/auth/meta/callback")
	viper.SetDefault("META_SCOPES", strings.Join([]string{
		"ads_read",
		"ads_management",
		"business_management",
		"instagram_basic",
		"instagram_manage_insights",
		"pages_read_engagement",
		"pages_show_list",
		"read_insights",
	}, ","))

	viper.SetDefault("DASHBOARD_URL", "http://localhost:3000/dashboard")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_SESSION_TTL", "24h")
	viper.SetDefault("AUTH_COOKIE_NAME", "meta_session")
	viper.SetDefault("AUTH_SECURE_COOKIES", false)

	// Limites praticados pela API de Marketing do Meta
	viper.SetDefault("RATE_LIMIT_WINDOW", "5m")
	viper.SetDefault("RATE_LIMIT_MAX_REQUESTS", 50)
	viper.SetDefault("RATE_LIMIT_MIN_SPACING", "2s")

	// TTL curto para métricas voláteis, mais longo para listas de contas
	viper.SetDefault("CACHE_INSIGHT_TTL", "5m")
	viper.SetDefault("CACHE_ACCOUNT_TTL", "15m")

	viper.SetDefault("RETRY_MAX_ATTEMPTS", 5)
	viper.SetDefault("RETRY_BASE_DELAY", "1s")
	viper.SetDefault("RETRY_MAX_DELAY", "30s")
	viper.SetDefault("RETRY_COOLDOWN", "500ms")

	viper.SetDefault("BATCH_CHUNK_SIZE", 10)
	viper.SetDefault("BATCH_INTER_CHUNK_DELAY", "1s")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	return config, nil
}

// loadEnvFile carrega o arquivo .env a partir das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
