package flatfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/roster/internal/registry"
)

// Store loads and saves a registry at a fixed file path.
type Store struct {
	path   string
	codec  *Codec
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCodec replaces the default codec.
func WithCodec(c *Codec) Option {
	return func(s *Store) { s.codec = c }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a store for the file at path.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	s := &Store{
		path:   path,
		codec:  NewCodec(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// LoadAll reads the whole file into a new registry. A missing file yields
// an empty registry. Any undecodable row fails the load with a *ParseError.
func (s *Store) LoadAll() (*registry.Registry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		LoadsTotal.WithLabelValues("missing").Inc()
		s.logger.Info("no storage file, starting empty", zap.String("path", s.path))
		reg, _ := registry.New()
		recordCounts(reg)
		return reg, nil
	}
	if err != nil {
		LoadsTotal.WithLabelValues("io_error").Inc()
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, s.path, err)
	}

	records, err := s.codec.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, ErrParse) {
			LoadsTotal.WithLabelValues("parse_error").Inc()
		} else {
			LoadsTotal.WithLabelValues("io_error").Inc()
		}
		s.logger.Error("failed to decode storage file", zap.String("path", s.path), zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	reg, err := registry.New(records...)
	if err != nil {
		return nil, err
	}

	LoadsTotal.WithLabelValues("success").Inc()
	recordCounts(reg)
	s.logger.Info("loaded records", zap.String("path", s.path), zap.Int("count", reg.Len()))
	return reg, nil
}

// SaveAll rewrites the file with every record in reg. The content is
// encoded in memory first and then written to a temporary file that is
// renamed over the target, so an encode failure never touches the file.
func (s *Store) SaveAll(reg *registry.Registry) error {
	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, reg.All()); err != nil {
		SavesTotal.WithLabelValues("encode_error").Inc()
		return fmt.Errorf("encode records: %w", err)
	}

	if err := s.write(buf.Bytes()); err != nil {
		SavesTotal.WithLabelValues("io_error").Inc()
		s.logger.Error("failed to write storage file", zap.String("path", s.path), zap.Error(err))
		return err
	}

	SavesTotal.WithLabelValues("success").Inc()
	LastSaveTimestamp.SetToCurrentTime()
	recordCounts(reg)
	s.logger.Info("saved records", zap.String("path", s.path), zap.Int("count", reg.Len()))
	return nil
}

func (s *Store) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrIO, err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename %s: %w", ErrIO, tmpPath, err)
	}
	return nil
}
