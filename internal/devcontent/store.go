// Package devcontent implements the content store over a local directory of
// YAML documents, for authoring against the pipeline without a hosted CMS.
// A file watcher feeds document changes into the same invalidation path a
// production webhook would take, so the local render cache stays honest.
package devcontent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/driftwood-studio/marquee/internal/content"
	"github.com/driftwood-studio/marquee/internal/logging"
	"github.com/driftwood-studio/marquee/internal/section"
)

// Store serves documents from a directory of YAML files. Each file holds one
// document with at least _id and _type; pages carry slug and sections.
// Documents marked `draft: true` are only visible in draft mode.
type Store struct {
	dir    string
	logger logging.Logger

	mutex  sync.RWMutex
	byID   map[string]section.RawRecord
	bySlug map[string]section.RawRecord
	// typeByFile remembers each file's document type so a deletion can
	// still be dispatched.
	typeByFile map[string]string
}

var _ content.Store = (*Store)(nil)

// NewStore loads every document under dir.
func NewStore(dir string, logger logging.Logger) (*Store, error) {
	s := &Store{
		dir:        dir,
		logger:     logger.WithComponent("devcontent"),
		byID:       make(map[string]section.RawRecord),
		bySlug:     make(map[string]section.RawRecord),
		typeByFile: make(map[string]string),
	}
	if err := s.loadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read content dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		if _, err := s.loadFile(filepath.Join(s.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// loadFile parses one document file and indexes it. Returns the document
// type for dispatch.
func (s *Store) loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", path, err)
	}

	var record section.RawRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return "", fmt.Errorf("parse document %s: %w", path, err)
	}

	id, _ := record["_id"].(string)
	docType, _ := record["_type"].(string)
	if id == "" || docType == "" {
		return "", fmt.Errorf("document %s is missing _id or _type", path)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.byID[id] = record
	s.typeByFile[path] = docType
	if slug, ok := record["slug"].(string); ok && slug != "" {
		s.bySlug[slug] = record
	}
	return docType, nil
}

// dropFile removes a deleted file's document. Returns the remembered type.
func (s *Store) dropFile(path string) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	docType := s.typeByFile[path]
	delete(s.typeByFile, path)

	// Rebuilding the two indexes from scratch is simpler than tracking
	// file-to-id mappings and the directory is small by construction.
	ids := make(map[string]section.RawRecord)
	slugs := make(map[string]section.RawRecord)
	for p := range s.typeByFile {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var record section.RawRecord
		if err := yaml.Unmarshal(data, &record); err != nil {
			continue
		}
		if id, ok := record["_id"].(string); ok {
			ids[id] = record
		}
		if slug, ok := record["slug"].(string); ok && slug != "" {
			slugs[slug] = record
		}
	}
	s.byID = ids
	s.bySlug = slugs
	return docType
}

// PageBySlug implements content.Store.
func (s *Store) PageBySlug(_ context.Context, slug string, mode content.CacheMode) (section.RawRecord, error) {
	s.mutex.RLock()
	record, ok := s.bySlug[slug]
	s.mutex.RUnlock()

	if !ok || !visible(record, mode) {
		return nil, content.ErrNotFound
	}
	return record, nil
}

// Document implements content.Store.
func (s *Store) Document(_ context.Context, id string, mode content.CacheMode) (section.RawRecord, error) {
	s.mutex.RLock()
	record, ok := s.byID[id]
	s.mutex.RUnlock()

	if !ok || !visible(record, mode) {
		return nil, content.ErrNotFound
	}
	return record, nil
}

// visible applies the draft gate: draft documents only surface in draft
// mode.
func visible(record section.RawRecord, mode content.CacheMode) bool {
	draft, _ := record["draft"].(bool)
	return !draft || mode == content.ModeDraft
}
