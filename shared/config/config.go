package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/mesto-decin/parking-permits/shared/errors"
)

// Provider selects the permit storage backend. Resolved once at
// startup; unknown tags are rejected before any request is served.
type Provider string

const (
	ProviderSharePoint Provider = "sharepoint"
	ProviderPostgres   Provider = "postgres"
	ProviderMemory     Provider = "memory"
)

func (p Provider) valid() bool {
	return p == ProviderSharePoint || p == ProviderPostgres || p == ProviderMemory
}

// Public is the non-secret part of the configuration, loaded from a
// YAML file. Zero values fall back to defaults.
type Public struct {
	Addr            string   `yaml:"addr"`
	LogLevel        string   `yaml:"log_level"`
	LogJSON         bool     `yaml:"log_json"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ZoneCatalogPath string   `yaml:"zone_catalog_path"`
	SessionTTLHours int      `yaml:"session_ttl_hours"`
}

// Graph holds the Microsoft Graph credentials and SharePoint list
// coordinates for the sharepoint provider.
type Graph struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	SiteID       string
	ListID       string
}

// Pg holds the connection settings for the postgres provider.
type Pg struct {
	Host     string
	Port     int
	User     string
	Password string
	Dbname   string
}

// Redis holds the optional profile-session store settings. An empty
// Addr selects the in-memory store.
type Redis struct {
	Addr     string
	Password string
}

// Config is built once at process start and never mutated afterwards.
type Config struct {
	Public   Public
	Provider Provider
	Graph    Graph
	Pg       Pg
	Redis    Redis
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Public.SessionTTLHours) * time.Hour
}

// Load reads the public YAML config (optional: an empty path keeps
// defaults) and the environment, and validates the result. A missing
// required variable for the selected provider fails fast with a
// ConfigurationError naming it.
func Load(configPath string) (*Config, error) {
	public := Public{
		Addr:            ":8080",
		LogLevel:        "info",
		AllowedOrigins:  []string{"http://localhost:5173"},
		SessionTTLHours: 24,
	}
	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.NewConfigurationError("cannot read config file %s: %v", configPath, err)
		}
		if err := yaml.Unmarshal(raw, &public); err != nil {
			return nil, errors.NewConfigurationError("cannot parse config file %s: %v", configPath, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		public.Addr = ":" + port
	}

	provider := Provider(strings.ToLower(os.Getenv("STORAGE_PROVIDER")))
	if provider == "" {
		provider = ProviderSharePoint
	}
	if !provider.valid() {
		return nil, errors.NewConfigurationError(
			"unsupported storage provider %q. Supported providers: %s, %s, %s",
			provider, ProviderSharePoint, ProviderPostgres, ProviderMemory)
	}

	cfg := &Config{
		Public:   public,
		Provider: provider,
		Graph: Graph{
			TenantID:     os.Getenv("TENANT_ID"),
			ClientID:     os.Getenv("CLIENT_ID"),
			ClientSecret: os.Getenv("CLIENT_SECRET"),
			SiteID:       os.Getenv("SITE_ID"),
			ListID:       os.Getenv("LIST_ID"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	switch provider {
	case ProviderSharePoint:
		if missing := missingVars(map[string]string{
			"TENANT_ID":     cfg.Graph.TenantID,
			"CLIENT_ID":     cfg.Graph.ClientID,
			"CLIENT_SECRET": cfg.Graph.ClientSecret,
			"SITE_ID":       cfg.Graph.SiteID,
			"LIST_ID":       cfg.Graph.ListID,
		}); len(missing) > 0 {
			return nil, errors.NewConfigurationError(
				"SharePoint configuration incomplete. Check environment variables: %s",
				strings.Join(missing, ", "))
		}
	case ProviderPostgres:
		pg, err := pgFromEnv()
		if err != nil {
			return nil, err
		}
		cfg.Pg = pg
	}

	return cfg, nil
}

func pgFromEnv() (Pg, error) {
	pg := Pg{
		Host:     os.Getenv("PG_HOST"),
		User:     os.Getenv("PG_USER"),
		Password: os.Getenv("PG_PASSWORD"),
		Dbname:   os.Getenv("PG_DBNAME"),
		Port:     5432,
	}
	if missing := missingVars(map[string]string{
		"PG_HOST":     pg.Host,
		"PG_USER":     pg.User,
		"PG_PASSWORD": pg.Password,
		"PG_DBNAME":   pg.Dbname,
	}); len(missing) > 0 {
		return Pg{}, errors.NewConfigurationError(
			"Postgres configuration incomplete. Check environment variables: %s",
			strings.Join(missing, ", "))
	}
	if raw := os.Getenv("PG_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Pg{}, errors.NewConfigurationError("PG_PORT must be an integer, got %q", raw)
		}
		pg.Port = port
	}
	return pg, nil
}

// missingVars returns the names of empty variables, sorted by the
// order the checks are declared in.
func missingVars(vars map[string]string) []string {
	order := []string{
		"TENANT_ID", "CLIENT_ID", "CLIENT_SECRET", "SITE_ID", "LIST_ID",
		"PG_HOST", "PG_USER", "PG_PASSWORD", "PG_DBNAME",
	}
	var missing []string
	for _, name := range order {
		if v, tracked := vars[name]; tracked && v == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// ConnString renders the lib/pq connection string.
func (p Pg) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Dbname)
}
