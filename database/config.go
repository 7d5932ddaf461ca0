package database

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Backend identifies which database driver and parameter-binding
// convention a connection uses.
type Backend string

const (
	// MySQL uses the go-sql-driver/mysql driver with positional ?
	// placeholders.
	MySQL Backend = "mysql"
	// Postgres uses the lib/pq driver. Statements are built with
	// positional placeholders and rebound to $n form before execution.
	Postgres Backend = "postgres"
	// SQLite uses the mattn/go-sqlite3 driver with named :column
	// placeholders.
	SQLite Backend = "sqlite"
)

// ParseBackend validates a backend-kind string.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case MySQL:
		return MySQL, nil
	case Postgres:
		return Postgres, nil
	case SQLite:
		return SQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// driverName maps a backend to its database/sql driver registration.
func (b Backend) driverName() string {
	switch b {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite3"
	}
	return string(b)
}

// Config holds connection settings for Open. Host/Port/User/Password/
// Database apply to the server backends; Path is the SQLite database file.
// Params carries backend-specific driver options verbatim.
type Config struct {
	Backend  Backend
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Path     string
	Params   map[string]string
}

// DSN renders the driver-specific data source name for the configured
// backend.
func (c Config) DSN() (string, error) {
	switch c.Backend {
	case MySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = c.addr("3306")
		mc.DBName = c.Database
		for k, v := range c.Params {
			if mc.Params == nil {
				mc.Params = make(map[string]string)
			}
			mc.Params[k] = v
		}
		return mc.FormatDSN(), nil

	case Postgres:
		kv := []string{
			"host=" + c.Host,
			"user=" + c.User,
			"dbname=" + c.Database,
		}
		if c.Port != 0 {
			kv = append(kv, fmt.Sprintf("port=%d", c.Port))
		}
		if c.Password != "" {
			kv = append(kv, "password="+c.Password)
		}
		for _, k := range sortedParamKeys(c.Params) {
			kv = append(kv, k+"="+c.Params[k])
		}
		return strings.Join(kv, " "), nil

	case SQLite:
		path := c.Path
		if path == "" {
			path = c.Database
		}
		if len(c.Params) == 0 {
			return path, nil
		}
		q := url.Values{}
		for k, v := range c.Params {
			q.Set(k, v)
		}
		return path + "?" + q.Encode(), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
}

func (c Config) addr(defaultPort string) string {
	if c.Port == 0 {
		return c.Host + ":" + defaultPort
	}
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func sortedParamKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromEnv builds a Config from STAND_DB_* environment variables, loading
// the .env file at envPath first when one is given. A missing default
// .env file is not an error; explicit paths must exist.
//
// Recognized variables: STAND_DB_BACKEND, STAND_DB_HOST, STAND_DB_PORT,
// STAND_DB_USER, STAND_DB_PASSWORD, STAND_DB_NAME, STAND_DB_PATH.
func FromEnv(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("stand: load env file %s: %w", envPath, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("stand: load .env: %w", err)
		}
	}

	backend, err := ParseBackend(os.Getenv("STAND_DB_BACKEND"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Backend:  backend,
		Host:     os.Getenv("STAND_DB_HOST"),
		User:     os.Getenv("STAND_DB_USER"),
		Password: os.Getenv("STAND_DB_PASSWORD"),
		Database: os.Getenv("STAND_DB_NAME"),
		Path:     os.Getenv("STAND_DB_PATH"),
	}
	if port := os.Getenv("STAND_DB_PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &cfg.Port); err != nil {
			return Config{}, fmt.Errorf("stand: invalid STAND_DB_PORT %q: %w", port, err)
		}
	}
	return cfg, nil
}
