package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	StoreDriver string `yaml:"storeDriver"` // memory (default) | postgres | sqlite | etcd
	DBURL       string `yaml:"dbUrl"`
	SQLitePath  string `yaml:"sqlitePath"`
	AutoMigrate bool   `yaml:"autoMigrate"`
	SeedDir     string `yaml:"seedDir"`

	EtcdEndpoints []string `yaml:"etcdEndpoints"`
	CORSOrigins   []string `yaml:"corsOrigins"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"` // text | json
}

func def() Config {
	return Config{
		Port:        "8080",
		StoreDriver: "memory",
		DBURL:       "",
		SQLitePath:  "data/restaurants.db",
		AutoMigrate: true,
		SeedDir:     "",

		EtcdEndpoints: []string{"localhost:2379"},
		CORSOrigins:   []string{"http://localhost:4200"},

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Default возвращает конфигурацию без файла, ENV и флагов.
func Default() Config { return def() }

func loadYAML(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return fallback
}

func getenvList(k string, fallback []string) []string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return splitList(v)
	}
	return fallback
}

func parseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load: дефолты -> YAML (если файл есть) -> ENV. Флаги применяет ApplyFlags.
func Load(path string) (Config, error) {
	cfg := def()

	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.Port = getenv("RESTAURANT_PORT", cfg.Port)
	cfg.StoreDriver = getenv("RESTAURANT_STORE", cfg.StoreDriver)
	cfg.DBURL = getenv("RESTAURANT_DB_URL", cfg.DBURL)
	cfg.SQLitePath = getenv("RESTAURANT_SQLITE_PATH", cfg.SQLitePath)
	cfg.AutoMigrate = getenvBool("RESTAURANT_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.SeedDir = getenv("RESTAURANT_SEED_DIR", cfg.SeedDir)
	cfg.EtcdEndpoints = getenvList("RESTAURANT_ETCD_ENDPOINTS", cfg.EtcdEndpoints)
	cfg.CORSOrigins = getenvList("RESTAURANT_CORS_ORIGINS", cfg.CORSOrigins)
	cfg.LogLevel = getenv("RESTAURANT_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("RESTAURANT_LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

// RegisterFlags объявляет флаги; значения по умолчанию только для справки,
// применяются лишь явно заданные флаги (см. ApplyFlags).
func RegisterFlags(fs *pflag.FlagSet) {
	d := def()
	fs.String("config", "config.yaml", "Path to config YAML")
	fs.String("port", d.Port, "HTTP port")
	fs.String("store", d.StoreDriver, "Store driver (memory/postgres/sqlite/etcd)")
	fs.String("db", d.DBURL, "Postgres URL (store=postgres)")
	fs.String("sqlite-path", d.SQLitePath, "SQLite file (store=sqlite)")
	fs.Bool("auto-migrate", d.AutoMigrate, "Create tables on start (store=postgres)")
	fs.String("seed-dir", d.SeedDir, "Directory with seed YAML files (empty = no seed)")
	fs.StringSlice("etcd", d.EtcdEndpoints, "etcd endpoints (store=etcd)")
	fs.StringSlice("cors-origin", d.CORSOrigins, "Allowed CORS origins")
	fs.String("log-level", d.LogLevel, "Log level (debug/info/warn/error)")
	fs.String("log-format", d.LogFormat, "Log format (text/json)")
}

// ApplyFlags перекрывает cfg флагами, которые пользователь задал явно.
func ApplyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var errs []error
	str := func(name string, dst *string) {
		if !fs.Changed(name) {
			return
		}
		v, err := fs.GetString(name)
		errs = append(errs, err)
		*dst = strings.TrimSpace(v)
	}
	list := func(name string, dst *[]string) {
		if !fs.Changed(name) {
			return
		}
		v, err := fs.GetStringSlice(name)
		errs = append(errs, err)
		*dst = v
	}

	str("port", &cfg.Port)
	str("store", &cfg.StoreDriver)
	str("db", &cfg.DBURL)
	str("sqlite-path", &cfg.SQLitePath)
	str("seed-dir", &cfg.SeedDir)
	str("log-level", &cfg.LogLevel)
	str("log-format", &cfg.LogFormat)
	list("etcd", &cfg.EtcdEndpoints)
	list("cors-origin", &cfg.CORSOrigins)
	if fs.Changed("auto-migrate") {
		v, err := fs.GetBool("auto-migrate")
		errs = append(errs, err)
		cfg.AutoMigrate = v
	}
	return errors.Join(errs...)
}

// Validate проверяет согласованность драйвера хранения и его параметров.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is empty")
	}
	switch c.StoreDriver {
	case "memory":
	case "postgres":
		if c.DBURL == "" {
			return errors.New("store=postgres requires dbUrl")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("store=sqlite requires sqlitePath")
		}
	case "etcd":
		if len(c.EtcdEndpoints) == 0 {
			return errors.New("store=etcd requires etcdEndpoints")
		}
	default:
		return fmt.Errorf("unknown store driver %q (allowed: memory|postgres|sqlite|etcd)", c.StoreDriver)
	}
	return nil
}
