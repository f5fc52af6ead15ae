// Package dbtx holds the transaction plumbing shared by repositories: starting a
// *sql.Tx with a bounded lock wait, binding gorm to it, and classifying driver errors.
package dbtx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

// Options controls how Begin prepares a transaction.
type Options struct {
	Dialect     string
	LockTimeout time.Duration
}

// Begin starts a transaction and, when LockTimeout is set, bounds how long any
// row lock taken inside it may wait.
func Begin(ctx context.Context, db *sql.DB, opts Options) (*sql.Tx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	if opts.LockTimeout <= 0 {
		return tx, nil
	}

	stmt, err := lockTimeoutStatement(opts.Dialect, opts.LockTimeout)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return tx, nil
}

func lockTimeoutStatement(dialect string, d time.Duration) (string, error) {
	switch dialect {
	case "", DialectPostgres:
		return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds()), nil
	case DialectMySQL:
		// innodb_lock_wait_timeout is in whole seconds, minimum 1.
		secs := int64(d / time.Second)
		if secs < 1 {
			secs = 1
		}
		return fmt.Sprintf("SET SESSION innodb_lock_wait_timeout = %d", secs), nil
	default:
		return "", fmt.Errorf("dbtx: unsupported dialect %q", dialect)
	}
}

// Conn returns a gorm handle bound to ctx that runs on tx when tx is non-nil.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}

// IsUniqueViolation reports a unique/primary key conflict.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return false
}

// IsRetryable reports lock-wait timeouts, serialization failures and deadlocks:
// the work did not happen and may be attempted again.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", "40001", "40P01":
			return true
		}
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1205 || myErr.Number == 1213
	}
	return false
}
