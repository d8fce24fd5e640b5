package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the typed view of the environment used by the blog server.
type Config struct {
	Port            string
	DatabaseDSN     string
	ReadDatabaseDSN string
	JWTSecret       string
	AcceptedOrigins []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	HighlightStyle  string
	LogLevel        string
	AutoMigrate     bool
	IssueTokenFor   string
	TokenTTL        time.Duration
}

// Load reads the process environment. Call godotenv.Load first to pick up a
// .env file.
func Load() Config {
	return FromMap(New())
}

// FromMap builds a Config from an environment map, applying defaults for
// missing or unparsable values.
func FromMap(env map[string]string) Config {
	return Config{
		Port:            GetString(env, "PORT", "8080"),
		DatabaseDSN:     GetString(env, "DATABASE_DSN", ""),
		ReadDatabaseDSN: GetString(env, "DATABASE_READ_DSN", ""),
		JWTSecret:       GetString(env, "JWT_SECRET", ""),
		AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS", []string{"*"}),
		ReadTimeout:     time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		HighlightStyle:  GetString(env, "HIGHLIGHT_STYLE", "monokai"),
		LogLevel:        GetString(env, "LOG_LEVEL", "info"),
		AutoMigrate:     GetBool(env, "AUTO_MIGRATE", true),
		IssueTokenFor:   GetString(env, "ISSUE_TOKEN_FOR", ""),
		TokenTTL:        time.Duration(GetInt(env, "TOKEN_TTL_HOURS", 24*30)) * time.Hour,
	}
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetList splits a comma separated value, dropping blank entries.
func GetList(config map[string]string, key string, defaultValue []string) []string {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	var list []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
