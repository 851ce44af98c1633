// Package hive implements the engine contract over a HiveServer2 connection
// using gohive, so the adomd cursor layer can run against an open-source
// tabular engine.
//
// Connection strings are ";"-separated key=value pairs:
//
//	host=localhost;port=10000;auth=NONE;database=default
//
// Recognised keys are host, port, auth, user, password, database, service,
// transport (binary or http) and http_path. Keys are case-insensitive.
package hive

import (
	"context"
	"strconv"
	"strings"

	"github.com/beltran/gohive"
	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/engine"
)

var (
	// ErrXMLUnsupported is returned by ExecuteXML; HiveServer2 has no XML
	// result format.
	ErrXMLUnsupported = errors.New("hive: XML results are not supported")

	// ErrNotOpen is returned when a query runs on a connection that is not open.
	ErrNotOpen = errors.New("hive: connection is not open")

	// ErrInvalidConnString is returned for malformed connection strings.
	ErrInvalidConnString = errors.New("hive: invalid connection string")
)

// Config holds the parsed connection string.
type Config struct {
	Host      string
	Port      int
	Auth      string
	User      string
	Password  string
	Database  string
	Service   string
	Transport string
	HTTPPath  string
}

// ParseConnString parses a key=value connection string. Port defaults to
// 10000 and auth to NONE.
func ParseConnString(s string) (Config, error) {
	cfg := Config{Port: 10000, Auth: "NONE"}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Config{}, errors.Wrapf(ErrInvalidConnString, "missing '=' in %q", part)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "host":
			cfg.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil || port <= 0 || port > 65535 {
				return Config{}, errors.Wrapf(ErrInvalidConnString, "port %q", value)
			}
			cfg.Port = port
		case "auth":
			cfg.Auth = strings.ToUpper(value)
		case "user":
			cfg.User = value
		case "password":
			cfg.Password = value
		case "database":
			cfg.Database = value
		case "service":
			cfg.Service = value
		case "transport":
			cfg.Transport = strings.ToLower(value)
		case "http_path":
			cfg.HTTPPath = value
		default:
			return Config{}, errors.Wrapf(ErrInvalidConnString, "unknown key %q", key)
		}
	}
	if cfg.Host == "" {
		return Config{}, errors.Wrap(ErrInvalidConnString, "host is required")
	}
	return cfg, nil
}

func (cfg Config) connectConfiguration() *gohive.ConnectConfiguration {
	c := gohive.NewConnectConfiguration()
	c.Username = cfg.User
	c.Password = cfg.Password
	c.Database = cfg.Database
	if cfg.Service != "" {
		c.Service = cfg.Service
	}
	if cfg.Transport != "" {
		c.TransportMode = cfg.Transport
	}
	if cfg.HTTPPath != "" {
		c.HTTPPath = cfg.HTTPPath
	}
	return c
}

// Connector returns an engine.Connector for HiveServer2. ctx bounds every
// call made on the connections it creates.
func Connector(ctx context.Context) engine.Connector {
	return func(connectionString string) (engine.Conn, error) {
		cfg, err := ParseConnString(connectionString)
		if err != nil {
			return nil, err
		}
		return &Conn{ctx: ctx, cfg: cfg, connStr: connectionString}, nil
	}
}

// Conn is a HiveServer2 connection handle.
type Conn struct {
	ctx     context.Context
	cfg     Config
	connStr string
	conn    *gohive.Connection
}

func (c *Conn) Open() error {
	if c.conn != nil {
		return nil
	}
	conn, err := gohive.Connect(c.cfg.Host, c.cfg.Port, c.cfg.Auth, c.cfg.connectConfiguration())
	if err != nil {
		return errors.Wrapf(err, "hive: connect %s:%d", c.cfg.Host, c.cfg.Port)
	}
	c.conn = conn
	return nil
}

func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Dispose releases nothing beyond Close; gohive frees the transport on Close.
func (c *Conn) Dispose() error { return nil }

func (c *Conn) State() engine.State {
	if c.conn == nil {
		return engine.Closed
	}
	return engine.Open
}

func (c *Conn) ConnectionString() string { return c.connStr }

func (c *Conn) exec(query string) (*gohive.Cursor, error) {
	if c.conn == nil {
		return nil, ErrNotOpen
	}
	cursor := c.conn.Cursor()
	cursor.Exec(c.ctx, query)
	if err := cursor.Error(); err != nil {
		cursor.Close()
		return nil, errors.Wrap(err, "hive: exec")
	}
	return cursor, nil
}

func (c *Conn) Execute(query string) (engine.Reader, error) {
	cursor, err := c.exec(query)
	if err != nil {
		return nil, err
	}
	return &Reader{ctx: c.ctx, cursor: cursor, columns: parseDescription(cursor.Description())}, nil
}

func (c *Conn) ExecuteXML(string) (engine.XMLReader, error) {
	return nil, ErrXMLUnsupported
}

func (c *Conn) ExecuteNonQuery(query string) error {
	cursor, err := c.exec(query)
	if err != nil {
		return err
	}
	cursor.Close()
	return nil
}
