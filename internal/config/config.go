package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		// Driver: postgres, mysql or sqlite
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	Storage struct {
		Type     string `yaml:"type"`      // local
		BasePath string `yaml:"base_path"` // uploads directory
		BaseURL  string `yaml:"base_url"`  // public URL prefix
	} `yaml:"storage"`

	Upload struct {
		MaxSize int64 `yaml:"max_size"` // max image size in bytes
	} `yaml:"upload"`

	Admin struct {
		// First superuser, seeded at startup when both are set
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

var AppConfig *Config

// LoadConfig fills AppConfig either from config.yaml or, when DATABASE_URL is
// set, entirely from environment variables (the test path).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.Driver = envOr("DATABASE_DRIVER", "postgres")
	cfg.Database.DSN = dbURL
	cfg.Server.Env = envOr("SERVER_ENV", "test")
	cfg.Server.Port, _ = strconv.Atoi(envOr("SERVER_PORT", "4000"))
	cfg.Admin.Email = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("FIRST_ADMIN_PASSWORD")

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./uploads")
	cfg.Storage.BaseURL = envOr("STORAGE_BASE_URL", "/files")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// GetConfig returns the loaded config, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/files"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
