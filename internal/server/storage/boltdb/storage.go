package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// BoltDB bucket names
var bucketRevoked = []byte("revoked")

// Storage represents BoltDB-backed session token denylist.
// Keys are token ids, values are expiry unix seconds (big endian).
type Storage struct {
	db  *bbolt.DB
	now func() time.Time
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file; parent directories are created
func New(ctx context.Context, dbPath string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	// Открываем BoltDB; таймаут защищает от второго процесса, держащего файл
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, now: time.Now}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRevoked); err != nil {
			return fmt.Errorf("failed to create revoked bucket: %w", err)
		}
		return nil
	})
}

// Revoke stores token id with its expiry and purges expired entries
func (s *Storage) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return fmt.Errorf("empty token id")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked bucket not found")
		}

		if err := purgeExpired(bucket, s.now()); err != nil {
			return err
		}

		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(expiresAt.Unix()))
		if err := bucket.Put([]byte(tokenID), value); err != nil {
			return fmt.Errorf("failed to save revoked token: %w", err)
		}

		return nil
	})
}

// IsRevoked reports whether token id is on the denylist
func (s *Storage) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRevoked)
		if bucket == nil {
			return fmt.Errorf("revoked bucket not found")
		}

		value := bucket.Get([]byte(tokenID))
		if value == nil {
			return nil
		}

		// Просроченная запись уже ничего не блокирует: токен отвергнет проверка exp
		revoked = !expired(value, s.now())
		return nil
	})
	if err != nil {
		return false, err
	}

	return revoked, nil
}

// Len returns the number of stored entries, expired ones included
func (s *Storage) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketRevoked).Stats().KeyN
		return nil
	})
	return n, err
}

func purgeExpired(bucket *bbolt.Bucket, now time.Time) error {
	var stale [][]byte

	err := bucket.ForEach(func(k, v []byte) error {
		if expired(v, now) {
			stale = append(stale, append([]byte(nil), k...))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan revoked tokens: %w", err)
	}

	// Удаление во время ForEach не поддерживается, поэтому удаляем отдельным проходом
	for _, k := range stale {
		if err := bucket.Delete(k); err != nil {
			return fmt.Errorf("failed to purge revoked token: %w", err)
		}
	}

	return nil
}

func expired(value []byte, now time.Time) bool {
	if len(value) != 8 {
		return true
	}
	return int64(binary.BigEndian.Uint64(value)) <= now.Unix()
}
