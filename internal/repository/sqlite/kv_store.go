package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/mira/gradekeeper/internal/logger"
	"github.com/mira/gradekeeper/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type kvStore struct {
	db *sql.DB
}

// NewKVStore creates a KVStore backed by the kv table.
func NewKVStore(db *sql.DB) repository.KVStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("kv")
	log.Debug("getting key: %s", key)

	query, args, err := sqlBuilder.Select("value").From("kv").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return nil, err
	}
	return value, nil
}

func (s *kvStore) SetMulti(ctx context.Context, entries map[string][]byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv")
	log.Debug("setting %d keys", len(entries))

	return tx(ctx, s.db, func(tx *sql.Tx) error {
		for key, value := range entries {
			query, args, err := sqlBuilder.Insert("kv").
				Columns("key", "value").
				Values(key, value).
				Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
				ToSql()
			if err != nil {
				log.Error("failed to build upsert: %v", err)
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to set key %s: %v", key, err)
				return err
			}
		}
		return nil
	})
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("kv")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}
