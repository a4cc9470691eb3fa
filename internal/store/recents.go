package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"drafter/internal/types"
)

var (
	bucketRecents = []byte("recent_projects")
)

const defaultRecentsLimit = 25

var ErrClosed = errors.New("recents store is closed")

// ProjectVisit is a locally-remembered project summary. It orders the
// dashboard; the backend's project list stays authoritative for contents.
type ProjectVisit struct {
	Project    types.Project `json:"project"`
	LastOpened time.Time     `json:"last_opened"`
}

type RecentsStore struct {
	db    *bolt.DB
	mu    sync.Mutex
	limit int
}

func OpenRecents(path string) (*RecentsStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("recents db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecents)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &RecentsStore{db: db, limit: defaultRecentsLimit}, nil
}

// Touch records that a project was opened now, evicting the oldest entries
// beyond the cap.
func (s *RecentsStore) Touch(project *types.Project) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	if project == nil || project.ID <= 0 {
		return errors.New("project with id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	visit := ProjectVisit{Project: *project, LastOpened: time.Now().UTC()}
	raw, err := json.Marshal(&visit)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecents)
		if b == nil {
			return errors.New("recents bucket missing")
		}
		if err := b.Put([]byte(strconv.Itoa(project.ID)), raw); err != nil {
			return err
		}
		return evictOldest(b, s.limit)
	})
}

// List returns visits newest first.
func (s *RecentsStore) List() ([]*ProjectVisit, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	out := make([]*ProjectVisit, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecents)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var visit ProjectVisit
			if err := json.Unmarshal(v, &visit); err != nil {
				return err
			}
			copyVisit := visit
			out = append(out, &copyVisit)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastOpened.After(out[j].LastOpened)
	})
	return out, nil
}

func (s *RecentsStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func evictOldest(b *bolt.Bucket, limit int) error {
	if limit <= 0 {
		return nil
	}
	type entry struct {
		key    []byte
		opened time.Time
	}
	var entries []entry
	if err := b.ForEach(func(k, v []byte) error {
		var visit ProjectVisit
		if err := json.Unmarshal(v, &visit); err != nil {
			return err
		}
		entries = append(entries, entry{key: append([]byte(nil), k...), opened: visit.LastOpened})
		return nil
	}); err != nil {
		return err
	}
	if len(entries) <= limit {
		return nil
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].opened.Before(entries[j].opened)
	})
	for _, stale := range entries[:len(entries)-limit] {
		if err := b.Delete(stale.key); err != nil {
			return err
		}
	}
	return nil
}
