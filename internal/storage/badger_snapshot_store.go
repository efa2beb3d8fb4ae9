package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/annel0/dig-planner/internal/mapgrid"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/gzip"
)

const worldKeyPrefix = "world:"

// BadgerSnapshotStore хранит снимки миров в BadgerDB.
// Значения сжимаются gzip: плотная сетка тайлов в JSON сжимается
// на порядок, а снимки читаются целиком, так что потоковость не нужна.
type BadgerSnapshotStore struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
}

// NewBadgerSnapshotStore открывает (или создаёт) хранилище снимков
func NewBadgerSnapshotStore(dataPath string) (*BadgerSnapshotStore, error) {
	dbPath := filepath.Join(dataPath, "worlds")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &BadgerSnapshotStore{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
	}, nil
}

// Close закрывает хранилище данных
func (bs *BadgerSnapshotStore) Close() error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if !bs.isReady {
		return nil
	}

	bs.isReady = false
	return bs.db.Close()
}

// SaveWorld сохраняет снимок мира
func (bs *BadgerSnapshotStore) SaveWorld(ctx context.Context, world string, snap *mapgrid.Snapshot) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return fmt.Errorf("хранилище не готово")
	}
	if world == "" {
		return fmt.Errorf("пустое имя мира")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	// Сжимаем перед записью
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("ошибка сжатия снимка: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("ошибка сжатия снимка: %w", err)
	}

	key := worldKeyPrefix + world
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	return nil
}

// LoadWorld загружает снимок мира
func (bs *BadgerSnapshotStore) LoadWorld(ctx context.Context, world string) (*mapgrid.Snapshot, bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return nil, false, fmt.Errorf("хранилище не готово")
	}

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	key := worldKeyPrefix + world
	var compressed []byte

	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			compressed = append([]byte{}, val...)
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	// Распаковываем
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, false, fmt.Errorf("ошибка распаковки снимка: %w", err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка распаковки снимка: %w", err)
	}

	var snap mapgrid.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("ошибка десериализации снимка: %w", err)
	}

	return &snap, true, nil
}

// ListWorlds возвращает имена всех сохранённых миров
func (bs *BadgerSnapshotStore) ListWorlds(ctx context.Context) ([]string, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var worlds []string
	err := bs.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(worldKeyPrefix)})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			worlds = append(worlds, strings.TrimPrefix(key, worldKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка обхода BadgerDB: %w", err)
	}

	return worlds, nil
}

// DeleteWorld удаляет снимок мира
func (bs *BadgerSnapshotStore) DeleteWorld(ctx context.Context, world string) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	key := worldKeyPrefix + world
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления из BadgerDB: %w", err)
	}

	return nil
}
