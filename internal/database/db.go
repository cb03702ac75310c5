// Package database owns the MySQL connection pool and schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/opergia/energia-backend/internal/config"
)

// Open connects to MySQL, applies the pool bounds from cfg and verifies the
// connection with a short ping.
func Open(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&tls=%t",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBTLS)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DBMaxOpen)
	db.SetMaxIdleConns(cfg.DBMaxIdle)
	db.SetConnMaxLifetime(cfg.DBConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Pool lazily constructs and hands out a single *sql.DB for the process. It
// is created in main and injected into the repositories, so tests can swap
// the opener for a fake.
type Pool struct {
	mu   sync.Mutex
	db   *sql.DB
	open func() (*sql.DB, error)
}

// NewPool returns a Pool that opens connections using cfg.
func NewPool(cfg config.Config) *Pool {
	return &Pool{open: func() (*sql.DB, error) { return Open(cfg) }}
}

// NewPoolWithOpener returns a Pool backed by a custom opener.
func NewPoolWithOpener(open func() (*sql.DB, error)) *Pool {
	return &Pool{open: open}
}

// Acquire returns the pooled handle, constructing it on first use. Concurrent
// first calls construct exactly one pool. The cached handle is returned
// without a liveness probe: database/sql redials dead connections on its own,
// so a per-call ping would only add a serialized round trip under the mutex.
// A failed construction is not cached; the next call retries the opener.
func (p *Pool) Acquire(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db != nil {
		return p.db, nil
	}
	db, err := p.open()
	if err != nil {
		return nil, err
	}
	p.db = db
	return db, nil
}

// Close drains and closes the underlying handle. Used only during shutdown,
// after the HTTP listener has stopped.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
