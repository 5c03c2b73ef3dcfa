package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jhoicas/caducidad-api/internal/domain/shelflife"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	ShelfLife ShelfLifeConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// HTTPConfig configuración del servidor HTTP. Por defecto solo escucha en loopback.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShelfLifeConfig parámetros del motor de vida útil.
type ShelfLifeConfig struct {
	Timezone          string // nombre IANA o "Local"
	ThresholdStrategy string // round_days, floor_days, months, quarter_months
	ToleranceBandDays int    // banda de "próximo al umbral", en días
	RolloverInterval  time.Duration
}

// Location resuelve la zona horaria configurada.
func (c ShelfLifeConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SHELF_TIMEZONE, etc.
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

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "caducidad-api"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		ShelfLife: ShelfLifeConfig{
			Timezone:          getString(v, "SHELF_TIMEZONE", "Local"),
			ThresholdStrategy: getString(v, "SHELF_THRESHOLD_STRATEGY", shelflife.StrategyRoundDays),
			ToleranceBandDays: getInt(v, "SHELF_TOLERANCE_BAND_DAYS", shelflife.DefaultToleranceBandDays),
			RolloverInterval:  time.Duration(getInt(v, "SHELF_ROLLOVER_INTERVAL_SECONDS", 60)) * time.Second,
		},
	}

	if _, err := shelflife.StrategyByName(cfg.ShelfLife.ThresholdStrategy); err != nil {
		return nil, fmt.Errorf("SHELF_THRESHOLD_STRATEGY: %w", err)
	}
	if _, err := cfg.ShelfLife.Location(); err != nil {
		return nil, fmt.Errorf("SHELF_TIMEZONE: %w", err)
	}
	if cfg.ShelfLife.ToleranceBandDays < 0 {
		return nil, fmt.Errorf("SHELF_TOLERANCE_BAND_DAYS debe ser >= 0")
	}
	if cfg.ShelfLife.RolloverInterval <= 0 {
		return nil, fmt.Errorf("SHELF_ROLLOVER_INTERVAL_SECONDS debe ser > 0")
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
