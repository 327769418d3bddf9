package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

type countingFetcher struct {
	rec   game.Record
	err   error
	calls int
}

func (f *countingFetcher) FetchGame(ctx context.Context, url string) (game.Record, error) {
	f.calls++
	return f.rec, f.err
}

type brokenStore struct{}

func (brokenStore) Load(ctx context.Context, url string) (game.Record, bool, error) {
	return game.Record{}, false, errors.New("disk on fire")
}

func (brokenStore) Save(ctx context.Context, url string, rec game.Record) error {
	return errors.New("disk on fire")
}

func (brokenStore) Close() error { return nil }

func testRecord(t *testing.T) game.Record {
	t.Helper()
	rec, err := game.NewRecord("2025-04-01", "中信兄弟", "統一7ELEVEn獅")
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	return rec
}

func TestFileStore_SaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()
	url := "https://www.cpbl.com.tw/box/live?year=2025&KindCode=A&gameSno=1"
	rec := testRecord(t)

	store, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if _, ok, err := store.Load(ctx, url); err != nil || ok {
		t.Fatalf("Load() on empty store = ok %v, err %v", ok, err)
	}

	if err := store.Save(ctx, url, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "records.json")); err != nil {
		t.Fatalf("records.json not written: %v", err)
	}

	// A fresh store must read what the first one wrote
	reopened, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	got, ok, err := reopened.Load(ctx, url)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() did not find saved record")
	}
	if got != rec {
		t.Errorf("Load() = %+v, want %+v", got, rec)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "records.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if _, _, err := store.Load(context.Background(), "x"); err == nil {
		t.Error("Load() expected error for corrupt file")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantNil bool
		wantErr bool
	}{
		{name: "empty means none", backend: "", wantNil: true},
		{name: "none", backend: "none", wantNil: true},
		{name: "file", backend: "file"},
		{name: "file upper case", backend: "FILE"},
		{name: "redis without url", backend: "redis", wantErr: true},
		{name: "unknown", backend: "memcached", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.backend, t.TempDir(), "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (store == nil) != tt.wantNil {
				t.Errorf("Open() store = %v, wantNil %v", store, tt.wantNil)
			}
		})
	}
}

func TestCachingFetcher(t *testing.T) {
	ctx := context.Background()
	url := "https://www.cpbl.com.tw/box/live?year=2025&KindCode=A&gameSno=1"
	rec := testRecord(t)

	t.Run("second fetch served from cache", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		inner := &countingFetcher{rec: rec}
		f := NewCachingFetcher(inner, store, nil, nil)

		for i := 0; i < 2; i++ {
			got, err := f.FetchGame(ctx, url)
			if err != nil {
				t.Fatalf("FetchGame() error = %v", err)
			}
			if got != rec {
				t.Errorf("FetchGame() = %+v, want %+v", got, rec)
			}
		}
		if inner.calls != 1 {
			t.Errorf("inner calls = %d, want 1", inner.calls)
		}
	})

	t.Run("failures are not cached", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		inner := &countingFetcher{err: game.ErrNotFoundOrChanged}
		f := NewCachingFetcher(inner, store, nil, nil)

		for i := 0; i < 2; i++ {
			if _, err := f.FetchGame(ctx, url); !errors.Is(err, game.ErrNotFoundOrChanged) {
				t.Fatalf("FetchGame() error = %v, want ErrNotFoundOrChanged", err)
			}
		}
		if inner.calls != 2 {
			t.Errorf("inner calls = %d, want 2", inner.calls)
		}
	})

	t.Run("store errors fall through", func(t *testing.T) {
		inner := &countingFetcher{rec: rec}
		f := NewCachingFetcher(inner, brokenStore{}, nil, nil)

		got, err := f.FetchGame(ctx, url)
		if err != nil {
			t.Fatalf("FetchGame() error = %v", err)
		}
		if got != rec {
			t.Errorf("FetchGame() = %+v, want %+v", got, rec)
		}
	})

	t.Run("nil store returns inner", func(t *testing.T) {
		inner := &countingFetcher{rec: rec}
		if f := NewCachingFetcher(inner, nil, nil, nil); f != inner {
			t.Error("NewCachingFetcher() with nil store should return inner fetcher")
		}
	})
}

func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("CPBL_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("CPBL_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewRedisStore(redisURL, "cpbl:test:")
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer store.Close()

	url := "https://www.cpbl.com.tw/box/live?year=2025&KindCode=A&gameSno=1"
	rec := testRecord(t)
	if err := store.Save(ctx, url, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, ok, err := store.Load(ctx, url)
	if err != nil || !ok {
		t.Fatalf("Load() = ok %v, err %v", ok, err)
	}
	if got != rec {
		t.Errorf("Load() = %+v, want %+v", got, rec)
	}

	if _, ok, err := store.Load(ctx, url+"&missing=1"); err != nil || ok {
		t.Errorf("Load() missing = ok %v, err %v", ok, err)
	}
}
