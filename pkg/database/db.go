package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Config holds database connection details.
type Config struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	ConnectTimeout time.Duration // connect-phase only; queries run without a deadline
}

// DSN renders the driver DSN. parseTime is always on so temporal columns
// arrive as time.Time instead of []byte.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.Database
	mc.Timeout = c.ConnectTimeout
	mc.ParseTime = true
	return mc.FormatDSN()
}

// Connector supplies a scoped database handle. Every Acquire opens a fresh
// connection and the returned release func closes it; nothing is held open
// or reused between calls.
type Connector interface {
	Acquire(ctx context.Context) (*sql.DB, func(), error)
}

// Provider implements Connector against a MySQL source.
type Provider struct {
	cfg    Config
	logger *zap.Logger
}

func NewProvider(logger *zap.Logger, cfg Config) *Provider {
	return &Provider{cfg: cfg, logger: logger}
}

// Acquire opens one connection, verifies it with a ping, and returns the
// handle with a release func. The handle is capped at a single open
// connection so a call maps to exactly one session on the server.
func (p *Provider) Acquire(ctx context.Context) (*sql.DB, func(), error) {
	db, err := sql.Open("mysql", p.cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	maskedDSN := maskDSN(p.cfg.DSN()) // Security: hide passwords
	p.logger.Debug("mysql_connection_established", zap.String("dsn", maskedDSN))

	release := func() {
		if cerr := db.Close(); cerr != nil {
			p.logger.Warn("mysql connection close failed", zap.Error(cerr))
		}
	}
	return db, release, nil
}

// maskDSN hides sensitive parts like passwords.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	auth := dsn[:at]
	if colon := strings.Index(auth, ":"); colon >= 0 {
		return auth[:colon] + ":*****" + dsn[at:]
	}
	return dsn
}
