package config

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/devprojects-api/errs"
)

var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// DatabaseSettings is the database part of the environment.
type DatabaseSettings struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	PasswordParam   string
	Name            string
	SSLMode         string
	ReplicaURLs     []string
	MaxOpenConns    int
	MaxIdleConns    int
	SlowQueryThresh time.Duration
}

func NewDatabaseSettings(c map[string]string) DatabaseSettings {
	return DatabaseSettings{
		URL:             GetString(c, "DATABASE_URL", ""),
		Host:            GetString(c, "DB_HOST", "localhost"),
		Port:            GetString(c, "DB_PORT", "5432"),
		User:            GetString(c, "DB_USER", "postgres"),
		Password:        GetString(c, "DB_PASSWORD", ""),
		PasswordParam:   GetString(c, "DB_PASSWORD_SSM_PARAM", ""),
		Name:            GetString(c, "DB_NAME", "project_developers"),
		SSLMode:         GetString(c, "DB_SSLMODE", "disable"),
		ReplicaURLs:     GetStrings(c, "DB_REPLICA_URLS", nil),
		MaxOpenConns:    GetInt(c, "DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    GetInt(c, "DB_MAX_IDLE_CONNS", 5),
		SlowQueryThresh: time.Duration(GetInt(c, "DB_SLOW_QUERY_MS", 1000)) * time.Millisecond,
	}
}

// ResolvePassword replaces Password with the Parameter Store value named by
// PasswordParam, when one is configured.
func (s *DatabaseSettings) ResolvePassword(ctx context.Context, store ParameterStore) error {
	if s.PasswordParam == "" {
		return nil
	}
	password, err := GetSecret(ctx, store, s.PasswordParam)
	if err != nil {
		return err
	}
	s.Password = password
	return nil
}

// Validate reports the first setting that cannot produce a working connection.
func (s DatabaseSettings) Validate() error {
	if s.URL != "" {
		if _, err := url.Parse(s.URL); err != nil {
			return errs.NewEnvironmentVariableError("DATABASE_URL")
		}
		return nil
	}
	if _, err := strconv.Atoi(s.Port); err != nil {
		return errs.NewEnvironmentVariableError("DB_PORT")
	}
	if !slices.Contains(sslModes, s.SSLMode) {
		return errs.NewEnvironmentVariableError("DB_SSLMODE")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value connection string
// built from the individual settings.
func (s DatabaseSettings) DSN() string {
	if s.URL != "" {
		return s.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.Host, s.User, quoteDSNValue(s.Password), s.Name, s.Port, s.SSLMode)
}

// Redacted is DSN with the password masked, for logs.
func (s DatabaseSettings) Redacted() string {
	if s.URL != "" {
		if u, err := url.Parse(s.URL); err == nil {
			return u.Redacted()
		}
		return "<unparseable DATABASE_URL>"
	}
	masked := s
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return masked.DSN()
}

func quoteDSNValue(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
