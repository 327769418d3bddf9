package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// Backend names accepted by Open
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Store persists records by box URL
type Store interface {
	Load(ctx context.Context, url string) (game.Record, bool, error)
	Save(ctx context.Context, url string, rec game.Record) error
	Close() error
}

// Open returns the store for a backend name. BackendNone returns a nil Store.
func Open(backend, dataDir, redisURL string) (Store, error) {
	switch strings.ToLower(backend) {
	case "", BackendNone:
		return nil, nil
	case BackendFile:
		return NewFileStore(dataDir)
	case BackendRedis:
		return NewRedisStore(redisURL, DefaultRedisPrefix)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", backend)
	}
}

// recordFile is the on-disk layout of records.json
type recordFile struct {
	Records   map[string]game.Record `json:"records"`
	UpdatedAt string                 `json:"updated_at"`
}

// FileStore handles persistence of records in a data directory
type FileStore struct {
	dataDir string

	mu      sync.Mutex
	records map[string]game.Record
}

// NewFileStore creates a new FileStore instance
func NewFileStore(dataDir string) (*FileStore, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{
		dataDir: dataDir,
	}, nil
}

// path returns the path to the records file
func (s *FileStore) path() string {
	return filepath.Join(s.dataDir, "records.json")
}

// load reads records.json once; callers hold s.mu
func (s *FileStore) load() error {
	if s.records != nil {
		return nil
	}

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			// No previous records, start empty
			s.records = make(map[string]game.Record)
			return nil
		}
		return fmt.Errorf("reading records: %w", err)
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing records: %w", err)
	}

	if file.Records == nil {
		file.Records = make(map[string]game.Record)
	}
	s.records = file.Records
	return nil
}

// Load returns the cached record for url
func (s *FileStore) Load(ctx context.Context, url string) (game.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return game.Record{}, false, err
	}
	rec, ok := s.records[url]
	return rec, ok, nil
}

// Save stores rec and rewrites records.json
func (s *FileStore) Save(ctx context.Context, url string, rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	s.records[url] = rec

	file := recordFile{
		Records:   s.records,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}

	return nil
}

// Close is a no-op; every Save is already on disk
func (s *FileStore) Close() error {
	return nil
}
