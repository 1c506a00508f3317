package infra_pg_init

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/krishkpatil/getflix/internal/config"
	_ "github.com/lib/pq"
)

// Schema is applied on startup. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	created_by   TEXT        NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	movies       JSONB       NOT NULL,
	filters      JSONB       NOT NULL,
	participants TEXT[]      NOT NULL DEFAULT '{}',
	status       TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS sessions_created_at_idx ON sessions (created_at);

CREATE TABLE IF NOT EXISTS swipes (
	session_id     TEXT  NOT NULL REFERENCES sessions (id) ON DELETE CASCADE,
	participant_id TEXT  NOT NULL,
	swipes         JSONB NOT NULL DEFAULT '{}',
	completed_at   TIMESTAMPTZ,
	PRIMARY KEY (session_id, participant_id)
);
`

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.ExecContext(context.Background(), Schema); err != nil {
		log.Fatal("postgres schema failed ", err)
	}

	return db
}
