package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const pingTimeout = 3 * time.Second

type PgDB struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewPostgresDB opens a pool for dsn and fails fast when the server does not
// answer a ping.
func NewPostgresDB(ctx context.Context, log *slog.Logger, dsn string) (*PgDB, error) {
	const op = "postgres.NewPostgresDB"

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", op, err)
	}

	// a sync run writes from a single goroutine
	db.SetMaxOpenConns(2)

	pgDB := &PgDB{
		db:  db,
		log: log,
	}

	if err = pgDB.pingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return pgDB, nil
}

func (pg *PgDB) GetDB() *sqlx.DB {
	return pg.db
}

func (pg *PgDB) Close() error {
	return pg.db.Close()
}

func (pg *PgDB) pingContext(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := "up"
	if err := pg.db.PingContext(ctx); err != nil {
		status = "down"
		pg.log.Error("database status", slog.String("status", status))
		return err
	}
	pg.log.Info("database status", slog.String("status", status))

	return nil
}
