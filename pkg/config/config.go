package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Webhook WebhookConfig
	Report  ReportConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// StorageConfig local dos arquivos de dados persistidos (configs de webhook/integração).
type StorageConfig struct {
	DataDir string
}

// WebhookConfig parâmetros de entrega dos webhooks de saída.
type WebhookConfig struct {
	TimeoutSeconds int    // timeout por tentativa de POST
	MaxRetries     int    // reenvios após a primeira tentativa (0 ou 1)
	Source         string // valor do campo "source" no envelope
}

// ReportConfig destino dos relatórios gerenciais em PDF.
type ReportConfig struct {
	OutputDir string
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DATA_DIR, WEBHOOK_TIMEOUT_SECONDS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos erro se não existir

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "juris-api"),
			LogLevel: getString(v, "APP_LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataDir: getString(v, "DATA_DIR", "./data"),
		},
		Webhook: WebhookConfig{
			TimeoutSeconds: getInt(v, "WEBHOOK_TIMEOUT_SECONDS", 10),
			MaxRetries:     getInt(v, "WEBHOOK_MAX_RETRIES", 1),
			Source:         getString(v, "WEBHOOK_SOURCE", "juris-api"),
		},
		Report: ReportConfig{
			OutputDir: getString(v, "REPORT_OUTPUT_DIR", "./reports"),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
