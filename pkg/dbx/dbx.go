package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/config"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/gocraft/dbr/v2"
	"github.com/gocraft/dbr/v2/dialect"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Open connects to Postgres with the configured pool and verifies the
// connection with a ping
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logx.Info("successfully connected to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// NewSession returns a dbr session sharing db's pool
func NewSession(db *sqlx.DB) *dbr.Session {
	conn := &dbr.Connection{
		DB:            db.DB,
		Dialect:       dialect.PostgreSQL,
		EventReceiver: EventReceiver{},
	}
	return conn.NewSession(nil)
}

// EventReceiver reports dbr query errors and timings through logx
type EventReceiver struct{}

func (EventReceiver) Event(eventName string) {}

func (EventReceiver) EventKv(eventName string, kvs map[string]string) {}

func (EventReceiver) EventErr(eventName string, err error) error {
	return EventReceiver{}.EventErrKv(eventName, err, nil)
}

func (EventReceiver) EventErrKv(eventName string, err error, kvs map[string]string) error {
	if !errors.Is(err, dbr.ErrNotFound) {
		logx.Warn("query failed",
			zap.String("event", eventName),
			zap.String("sql", kvs["sql"]),
			zap.Error(err),
		)
	}
	return err
}

func (EventReceiver) Timing(eventName string, nanoseconds int64) {}

func (EventReceiver) TimingKv(eventName string, nanoseconds int64, kvs map[string]string) {
	logx.Debug("query",
		zap.String("event", eventName),
		zap.Duration("took", time.Duration(nanoseconds)),
		zap.String("sql", kvs["sql"]),
	)
}

// ============================================================================
// Error classification
// ============================================================================

// IsUnavailable reports whether err means the database could not be reached
// (network failure, dropped connection, server shutting down, timeout)
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08 connection exception, 57P0x operator intervention, 53 insufficient resources
		code := string(pqErr.Code)
		return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57P0") || strings.HasPrefix(code, "53")
	}
	return false
}

// IsUniqueViolation reports a unique constraint violation (23505)
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsForeignKeyViolation reports a foreign key violation (23503)
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// InTx runs fn inside a transaction, committing when fn returns nil
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
