package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukerupert/schompf/internal/migrate"
	"github.com/dukerupert/schompf/internal/model"
)

// Backend persists the encoded document. Load returns nil data when nothing
// has been stored yet.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Store holds the document in memory and writes every change through to the
// backend. All mutations are serialised. A committed document is never
// mutated again, so values read in View stay valid after it returns.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	doc     *model.Document
	raw     []byte
	logger  *slog.Logger
}

// Open loads the document from backend, seeding an empty one with defaults.
// Documents written by older versions are upgraded and saved back.
func Open(ctx context.Context, backend Backend, logger *slog.Logger) (*Store, error) {
	data, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	data, report, err := migrate.Upgrade(data)
	if err != nil {
		return nil, err
	}
	if report.Changed() {
		logger.Info("upgraded legacy document", "report", report)
	}

	s := &Store{backend: backend, logger: logger}

	var doc *model.Document
	seeded := false
	if len(bytes.TrimSpace(data)) == 0 {
		doc = model.NewDocument()
		seeded = true
	} else {
		doc, err = DecodeDocument(data)
		if err != nil {
			return nil, err
		}
		seeded = doc.EnsureDefaults() || report.Changed()
	}

	raw, err := encode(doc)
	if err != nil {
		return nil, err
	}
	if seeded {
		if err := backend.Save(ctx, raw); err != nil {
			return nil, fmt.Errorf("save document: %w", err)
		}
		logger.Info("document initialized with defaults")
	}

	s.doc = doc
	s.raw = raw
	return s, nil
}

// DecodeDocument parses an encoded document. It rejects anything that is not
// a JSON object.
func DecodeDocument(data []byte) (*model.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: document is not a JSON object", model.ErrValidation)
	}
	var doc model.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", model.ErrValidation, err)
	}
	return &doc, nil
}

func encode(doc *model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// View runs fn against the current document. fn must not modify it.
func (s *Store) View(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	return fn(doc)
}

// Update runs fn against a private copy of the document. If fn succeeds the
// copy is persisted and then becomes the current document; otherwise it is
// discarded and the error returned unchanged.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var working model.Document
	if err := json.Unmarshal(s.raw, &working); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}
	if err := fn(&working); err != nil {
		return err
	}

	raw, err := encode(&working)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, raw); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	s.doc = &working
	s.raw = raw
	return nil
}

// Snapshot returns the encoded current document.
func (s *Store) Snapshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return bytes.Clone(s.raw), nil
}

// Restore replaces the whole document with data after upgrading and
// validating it.
func (s *Store) Restore(ctx context.Context, data []byte) error {
	data, _, err := migrate.Upgrade(data)
	if err != nil {
		return err
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	doc.EnsureDefaults()

	raw, err := encode(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ctx, raw); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	s.doc = doc
	s.raw = raw
	s.logger.Info("document restored", "bytes", len(raw))
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
