package datastore

import (
	"context"
	"database/sql"

	"github.com/kawabatas/songbook/internal/domain/repository"
	pgdriver "github.com/kawabatas/songbook/internal/infra/datastore/postgres"
)

type postgresStore struct {
	db    *sql.DB
	songs repository.SongRepository
}

func (s *postgresStore) Ping(ctx context.Context) error   { return s.db.PingContext(ctx) }
func (s *postgresStore) Close() error                     { return s.db.Close() }
func (s *postgresStore) Songs() repository.SongRepository { return s.songs }

func (s *postgresStore) SetConnPool(maxOpen, maxIdle int) {
	if maxOpen > 0 {
		s.db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		s.db.SetMaxIdleConns(maxIdle)
	}
}

func openPostgres(ctx context.Context, cfg Config) (DataStore, error) {
	db, err := pgdriver.Open(ctx, pgdriver.DSN(cfg.DSN, cfg.UseSSL))
	if err != nil {
		return nil, err
	}
	table, err := pgdriver.EnsureSchema(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &postgresStore{db: db, songs: pgdriver.NewSongRepo(db, table)}, nil
}
