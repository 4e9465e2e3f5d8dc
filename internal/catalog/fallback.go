package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// FallbackStore is the local keyed file used when the primary store is
// unavailable. The file holds one JSON array of full PlaceEntity snapshots;
// uniqueness is enforced on the entity's place id at write time. An advisory
// file lock guards against a second tubemap process writing concurrently.
type FallbackStore struct {
	path string
	lock *flock.Flock
}

// NewFallbackStore builds a fallback store for the given file path.
func NewFallbackStore(path string) *FallbackStore {
	return &FallbackStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the fallback file location.
func (f *FallbackStore) Path() string {
	return f.path
}

// Load reads all entries. A missing or corrupt file yields an empty list so a
// degraded run can always make progress.
func (f *FallbackStore) Load() ([]PlaceEntity, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fallback file: %w", err)
	}

	var entries []PlaceEntity
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt snapshots are abandoned rather than blocking ingestion.
		return nil, nil
	}
	return entries, nil
}

// Upsert replaces the entry matching the entity's place id, or appends it,
// then rewrites the whole file atomically.
func (f *FallbackStore) Upsert(entity *PlaceEntity) error {
	if entity == nil {
		return errors.New("entity is nil")
	}
	if strings.TrimSpace(entity.KakaoPlaceID) == "" {
		return errors.New("entity is missing its place id")
	}

	locked, err := f.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock fallback file: %w", err)
	}
	if !locked {
		return errors.New("fallback file is locked by another process")
	}
	defer func() { _ = f.lock.Unlock() }()

	entries, err := f.Load()
	if err != nil {
		return err
	}

	if entity.UpdatedAt.IsZero() {
		entity.UpdatedAt = time.Now().UTC()
	}

	replaced := false
	for i := range entries {
		if entries[i].KakaoPlaceID == entity.KakaoPlaceID {
			entries[i] = *entity
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, *entity)
	}

	return f.write(entries)
}

// Keys returns the set of place ids currently in the fallback file.
func (f *FallbackStore) Keys() (map[string]struct{}, error) {
	entries, err := f.Load()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.KakaoPlaceID) != "" {
			keys[entry.KakaoPlaceID] = struct{}{}
		}
	}
	return keys, nil
}

func (f *FallbackStore) write(entries []PlaceEntity) error {
	if entries == nil {
		entries = []PlaceEntity{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fallback entries: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create fallback directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp fallback file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp fallback file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync temp fallback file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp fallback file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace fallback file: %w", err)
	}
	return nil
}
