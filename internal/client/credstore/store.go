// Package credstore persists the current session credential across client
// restarts. It stores an opaque auth token and the JSON-encoded user record
// together under fixed keys in the local sqlite database; the pair is always
// written and removed in a single transaction so a reader never observes a
// partial credential.
package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smazurs/peerpoint/internal/client/models"
	"github.com/smazurs/peerpoint/internal/common"
	"github.com/smazurs/peerpoint/internal/dbx"
)

const (
	keyAuthToken  = "auth_token"
	keyUserRecord = "user_record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save persists the token and user record together, overwriting any prior
// value. Write failures are reported as common.ErrStorageUnavailable; the
// caller decides whether that is fatal (it is not: the in-memory session
// stays valid, it just will not survive a restart).
func (s *Store) Save(ctx context.Context, token string, user models.UserRecord) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encoding user record: %v", common.ErrStorageUnavailable, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyAuthToken, []byte(token)); err != nil {
			return err
		}
		return set(ctx, tx, keyUserRecord, data)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

// Load returns the persisted credential if present and structurally valid.
// Absent or malformed data (empty token, undecodable or incomplete user
// record) yields (nil, nil) rather than an error: it is treated as "no
// session". Only I/O failures surface as errors.
func (s *Store) Load(ctx context.Context) (*models.StoredCredential, error) {
	token, ok, err := s.get(ctx, keyAuthToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	if !ok || len(token) == 0 {
		return nil, nil
	}

	data, ok, err := s.get(ctx, keyUserRecord)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	if !ok {
		return nil, nil
	}

	var user models.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, nil
	}
	if !user.Valid() {
		return nil, nil
	}

	return &models.StoredCredential{AuthToken: string(token), User: user}, nil
}

// Clear removes any persisted credential. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`, keyAuthToken, keyUserRecord)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, true, nil
}

func set(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}
