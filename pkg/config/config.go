package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration struct.
type Config struct {
	Server struct {
		Address string `yaml:"address"`
		Port    int    `yaml:"port"`
		TLS     struct {
			CertFile string `yaml:"cert_file"`
			KeyFile  string `yaml:"key_file"`
		} `yaml:"tls"`
	} `yaml:"server"`
	Storage struct {
		// Backend selects document persistence: "file", "pebble", or
		// "pebble+file" (pebble primary with file fallback).
		Backend  string `yaml:"backend"`
		FilePath string `yaml:"file_path"`
		DBPath   string `yaml:"db_path"`
	} `yaml:"storage"`
	Board struct {
		Tabs           []TabEntry `yaml:"tabs"`
		MaxContentSize SizeBytes  `yaml:"max_content_size"`
	} `yaml:"board"`
	Security struct {
		RateLimit struct {
			RPS   float64 `yaml:"rps"`
			Burst int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"security"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	MCP struct {
		Enabled   bool   `yaml:"enabled"`
		Transport string `yaml:"transport"` // stdio | http
		Address   string `yaml:"address"`
	} `yaml:"mcp"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// SnapshotConfig controls scheduled document backups.
type SnapshotConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
	Dir     string `yaml:"dir"`
	Keep    int    `yaml:"keep"`
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	addr := c.Server.Address
	if addr == "" {
		addr = "0.0.0.0"
	}
	p := c.Server.Port
	if p == 0 {
		p = 8080
	}
	return fmt.Sprintf("%s:%d", addr, p)
}

// EffectiveConfigResult is the merged view of flags, env and config file
// that the rest of the app consumes.
type EffectiveConfigResult struct {
	Config   *Config
	Addr     string
	FilePath string
	DBPath   string
	Source   string // flags | env | config
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseCommandFlags defines and parses command-line flags and returns their
// values along with a map indicating which flags were explicitly set.
func ParseCommandFlags() (addr, filePath, dbPath, cfgPath string, setFlags map[string]bool) {
	addrPtr := flag.String("addr", ":8080", "HTTP listen address")
	filePtr := flag.String("file", "./board.json", "document file path")
	dbPtr := flag.String("db", "./.database", "Pebble DB path")
	cfgPtr := flag.String("config", "./config.yaml", "path to config file")
	flag.Parse()
	setFlags = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return *addrPtr, *filePtr, *dbPtr, *cfgPtr, setFlags
}

// ResolveConfigPath decides the config file path using the flag-provided
// value and TABBOARD_CONFIG when the flag was not set.
func ResolveConfigPath(flagPath string, flagSet bool) string {
	if flagSet {
		return flagPath
	}
	if p := os.Getenv("TABBOARD_CONFIG"); p != "" {
		return p
	}
	return flagPath
}

// LoadEnvOverrides applies TABBOARD_* environment overrides onto cfg and
// reports whether any env vars were used.
func LoadEnvOverrides(cfg *Config) bool {
	envUsed := false
	if v := os.Getenv("TABBOARD_ADDR"); v != "" {
		envUsed = true
		if h, p, err := net.SplitHostPort(v); err == nil {
			cfg.Server.Address = h
			if pi, err := strconv.Atoi(p); err == nil {
				cfg.Server.Port = pi
			}
		} else {
			cfg.Server.Address = v
		}
	}
	if v := os.Getenv("TABBOARD_STORAGE_BACKEND"); v != "" {
		envUsed = true
		cfg.Storage.Backend = strings.TrimSpace(v)
	}
	if v := os.Getenv("TABBOARD_FILE_PATH"); v != "" {
		envUsed = true
		cfg.Storage.FilePath = v
	}
	if v := os.Getenv("TABBOARD_DB_PATH"); v != "" {
		envUsed = true
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TABBOARD_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			envUsed = true
			cfg.Security.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("TABBOARD_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			envUsed = true
			cfg.Security.RateLimit.Burst = n
		}
	}
	if v := os.Getenv("TABBOARD_MCP_TRANSPORT"); v != "" {
		envUsed = true
		cfg.MCP.Enabled = true
		cfg.MCP.Transport = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("TABBOARD_MCP_ADDR"); v != "" {
		envUsed = true
		cfg.MCP.Address = v
	}
	if v := os.Getenv("TABBOARD_LOG_LEVEL"); v != "" {
		envUsed = true
		cfg.Logging.Level = v
	}
	if c := os.Getenv("TABBOARD_TLS_CERT"); c != "" {
		envUsed = true
		cfg.Server.TLS.CertFile = c
	}
	if k := os.Getenv("TABBOARD_TLS_KEY"); k != "" {
		envUsed = true
		cfg.Server.TLS.KeyFile = k
	}
	return envUsed
}

// LoadEffective loads config from the given path and applies env overrides
// and explicit flags (flags win over env, env wins over file).
func LoadEffective(cfgPath, addrFlag, fileFlag, dbFlag string, setFlags map[string]bool) (EffectiveConfigResult, error) {
	cfg, err := Load(cfgPath)
	source := "config"
	if err != nil {
		cfg = &Config{}
		source = "flags"
	}
	if LoadEnvOverrides(cfg) {
		source = "env"
	}

	eff := EffectiveConfigResult{Config: cfg, Source: source}

	eff.Addr = cfg.Addr()
	if setFlags["addr"] {
		eff.Addr = addrFlag
		eff.Source = "flags"
	}
	eff.FilePath = cfg.Storage.FilePath
	if eff.FilePath == "" || setFlags["file"] {
		eff.FilePath = fileFlag
	}
	eff.DBPath = cfg.Storage.DBPath
	if eff.DBPath == "" || setFlags["db"] {
		eff.DBPath = dbFlag
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	return eff, nil
}
