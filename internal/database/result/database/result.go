package database

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"kitchen-rush/internal/cache"
	"kitchen-rush/internal/database"
	"kitchen-rush/internal/database/result/model"
)

var (
	resultsBucket = []byte("results")
	idsBucket     = []byte("result_ids")

	ErrNotFound = errors.New("not found")
)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

// DB stores finished games ordered by finish time.
type DB struct {
	sDB *database.DB

	cache cache.Cache

	// gen counts writes. A recent list read under an older generation is
	// never cached.
	mu  sync.Mutex
	gen uint64
}

// key sorts chronologically: unix nanos big-endian followed by the id.
func key(m model.Result) ([]byte, error) {
	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("uuid binary: %w", err)
	}
	b := make([]byte, 8+len(binaryID))
	binary.BigEndian.PutUint64(b, uint64(m.FinishedAt.UnixNano()))
	copy(b[8:], binaryID)
	return b, nil
}

func recentKey(limit int) string {
	return fmt.Sprintf("recent:%d", limit)
}

func (db *DB) Add(m model.Result) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	results, err := tx.CreateBucketIfNotExists(resultsBucket)
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", resultsBucket, err)
	}
	ids, err := tx.CreateBucketIfNotExists(idsBucket)
	if err != nil {
		return fmt.Errorf("create bucket %s: %w", idsBucket, err)
	}

	k, err := key(m)
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := results.Put(k, bytes); err != nil {
		return fmt.Errorf("put result: %w", err)
	}
	if err := ids.Put(k[8:], k); err != nil {
		return fmt.Errorf("put result id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	db.invalidateRecent()

	return nil
}

func (db *DB) generation() uint64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.gen
}

func (db *DB) invalidateRecent() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.gen++
	if db.cache == nil {
		return
	}
	for _, ck := range db.cache.Keys() {
		if s, ok := ck.(string); ok && strings.HasPrefix(s, "recent:") {
			db.cache.Delete(ck)
		}
	}
}

// fillRecent caches list only if no write landed since gen was read.
func (db *DB) fillRecent(gen uint64, limit int, list []model.Result) {
	if db.cache == nil {
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.gen != gen {
		return
	}
	db.cache.Add(recentKey(limit), list)
}

// FetchByID returns a single result.
func (db *DB) FetchByID(id uuid.UUID) (model.Result, error) {
	var m model.Result
	if db.cache != nil {
		if v, ok := db.cache.Get(id); ok {
			return v.(model.Result), nil
		}
	}

	binaryID, err := id.MarshalBinary()
	if err != nil {
		return m, fmt.Errorf("uuid binary: %w", err)
	}

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		ids := tx.Bucket(idsBucket)
		results := tx.Bucket(resultsBucket)
		if ids == nil || results == nil {
			return ErrNotFound
		}
		k := ids.Get(binaryID)
		if k == nil {
			return ErrNotFound
		}
		v := results.Get(k)
		if v == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(v, &m); err != nil {
			return fmt.Errorf("json unmarshal: %w", err)
		}
		return nil
	}); err != nil {
		return m, fmt.Errorf("view transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(id, m)
	}

	return m, nil
}

// FetchRecent returns up to limit results, newest first.
func (db *DB) FetchRecent(limit int) ([]model.Result, error) {
	if limit <= 0 {
		return []model.Result{}, nil
	}
	if db.cache != nil {
		if v, ok := db.cache.Get(recentKey(limit)); ok {
			return v.([]model.Result), nil
		}
	}

	gen := db.generation()
	list := make([]model.Result, 0, limit)
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(resultsBucket)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(list) < limit; k, v = c.Prev() {
			var m model.Result
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}
			list = append(list, m)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction: %w", err)
	}

	db.fillRecent(gen, limit, list)

	return list, nil
}
