// Package filestore persists widget instances in a single JSON document
// written atomically.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/natefinch/atomic"

	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/store"
)

// document maps widget id base to placement number to instance.
type document map[string]map[string]model.Instance

// Store keeps every instance in one JSON file. Writes replace the file
// atomically so readers never observe a partial document.
type Store struct {
	mu     sync.Mutex
	path   string
	logger interfaces.Logger
}

var _ store.Store = (*Store)(nil)

// Option customises the store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store backed by path. The file is created on first save.
func New(path string, options ...Option) *Store {
	s := &Store{path: path, logger: logging.NoOp()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Get(_ context.Context, idBase, number string) (model.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return model.Instance{}, err
	}
	instance, ok := doc[idBase][number]
	if !ok {
		return model.Instance{}, store.ErrInstanceNotFound
	}
	return instance, nil
}

func (s *Store) Save(_ context.Context, idBase, number string, instance model.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if doc[idBase] == nil {
		doc[idBase] = make(map[string]model.Instance)
	}
	doc[idBase][number] = instance
	if err := s.write(doc); err != nil {
		return err
	}
	s.logger.Debug("filestore.save", "widget", idBase, "number", number)
	return nil
}

func (s *Store) Delete(_ context.Context, idBase, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[idBase][number]; !ok {
		return store.ErrInstanceNotFound
	}
	delete(doc[idBase], number)
	if len(doc[idBase]) == 0 {
		delete(doc, idBase)
	}
	if err := s.write(doc); err != nil {
		return err
	}
	s.logger.Debug("filestore.delete", "widget", idBase, "number", number)
	return nil
}

func (s *Store) List(_ context.Context, idBase string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(doc[idBase]))
	for number := range doc[idBase] {
		numbers = append(numbers, number)
	}
	slices.Sort(numbers)
	return numbers, nil
}

func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "read instance file").
			WithTextCode("FILESTORE_READ_FAILED")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return document{}, nil
	}

	doc := document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "decode instance file").
			WithTextCode("FILESTORE_DECODE_FAILED").
			WithMetadata(map[string]any{"path": s.path})
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "encode instance file").
			WithTextCode("FILESTORE_ENCODE_FAILED")
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "create instance directory").
				WithTextCode("FILESTORE_WRITE_FAILED")
		}
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(append(data, '\n'))); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "write instance file").
			WithTextCode("FILESTORE_WRITE_FAILED").
			WithMetadata(map[string]any{"path": s.path})
	}
	return nil
}
