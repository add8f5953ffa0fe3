package journal

import (
	"fmt"
	"net/url"
	"strings"
)

// Config selects the journal database.
//
// To connect to PostgreSQL set a postgres:// DSN. A file: DSN opens a sqlite
// file, and an empty DSN keeps the journal in memory.
type Config struct {
	DSN    string `env:"JOURNAL_DSN" env-default:""`
	Schema string `env:"JOURNAL_SCHEMA" env-default:""`
}

// dbConfig is the parsed form of Config.
type dbConfig struct {
	Driver   string
	Name     string
	Schema   string
	Username string
	Password string
	Host     string
	Port     string
}

// parseDSN parses a sqlite file: DSN or a PostgreSQL URI.
func parseDSN(dsn, schema string) (dbConfig, error) {
	if dsn == "" {
		return dbConfig{Driver: "sqlite"}, nil
	}
	if strings.HasPrefix(dsn, "file:") {
		parts := strings.SplitN(dsn[5:], "?", 2)
		return dbConfig{Driver: "sqlite", Name: parts[0]}, nil
	}

	parsedURL, err := url.Parse(dsn)
	if err != nil {
		return dbConfig{}, fmt.Errorf("invalid connection string: %w", err)
	}
	if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
		return dbConfig{}, fmt.Errorf("unsupported scheme: %s", parsedURL.Scheme)
	}

	cnf := dbConfig{
		Driver: "postgres",
		Name:   strings.TrimPrefix(parsedURL.Path, "/"),
		Schema: schema,
		Host:   parsedURL.Hostname(),
		Port:   parsedURL.Port(),
	}
	if cnf.Port == "" {
		cnf.Port = "5432"
	}
	if user := parsedURL.User; user != nil {
		cnf.Username = user.Username()
		cnf.Password, _ = user.Password()
	}
	if s := parsedURL.Query().Get("search_path"); s != "" && cnf.Schema == "" {
		cnf.Schema = s
	}
	return cnf, nil
}

func (c dbConfig) postgresDSN() string {
	dsn := fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		c.Username, c.Password, c.Host, c.Port, c.Name,
	)
	if c.Schema != "" {
		dsn = fmt.Sprintf("%s search_path=%s", dsn, c.Schema)
	}
	return dsn
}

func (c dbConfig) sqliteDSN() string {
	if c.Name == "" {
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf("file:%s?cache=shared", c.Name)
}
