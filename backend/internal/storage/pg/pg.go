// Package pg is the Postgres permit repository for deployments without
// a SharePoint tenant.
package pg

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/mesto-decin/parking-permits/shared/config"
	"github.com/mesto-decin/parking-permits/shared/errors"
	"github.com/mesto-decin/parking-permits/shared/logger"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to postgres", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, &errors.RepositoryError{Op: "connect to postgres", Err: err}
	}
	logger.Log.Info("connected to postgres")
	return &Storage{db: db}, nil
}

func Connect(cfg config.Pg) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
