package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// Compile-time interface checks.
var (
	_ Store       = (*JSONFile)(nil)
	_ Quarantiner = (*JSONFile)(nil)
)

// codec writes keys in sorted order, keeps non-ASCII text as-is and does
// not escape HTML characters. Its own indentation flattens nested objects,
// so encode compactly and let json.Indent lay the document out.
var codec = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// JSONFile is a Store backed by one JSON file.
type JSONFile struct {
	path   string
	fs     afero.Fs
	logger *zerolog.Logger
}

// Option is a function that configures a JSONFile.
type Option func(*JSONFile) error

// WithFs sets the filesystem the file lives on.
func WithFs(fsys afero.Fs) Option {
	return func(s *JSONFile) error {
		if fsys == nil {
			return errors.NewConfigError("store", "filesystem cannot be nil", nil)
		}
		s.fs = fsys
		return nil
	}
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *JSONFile) error {
		s.logger = logger
		return nil
	}
}

// NewJSONFile creates a store for the catalog file at path.
// The file is not touched until the first operation.
func NewJSONFile(path string, opts ...Option) (*JSONFile, error) {
	if path == "" {
		return nil, errors.NewConfigError("store", "catalog file path is required", nil)
	}

	s := &JSONFile{
		path:   filepath.Clean(path),
		fs:     afero.NewOsFs(),
		logger: logging.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the catalog file path.
func (s *JSONFile) Path() string {
	return s.path
}

// ReadAll decodes the catalog file.
func (s *JSONFile) ReadAll(ctx context.Context) (Records, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("catalog file", s.path)
		}
		return nil, errors.WrapIO("read", s.path, err)
	}

	// An empty file is what older versions left behind after a reset.
	if len(bytes.TrimSpace(data)) == 0 {
		return Records{}, nil
	}

	var records Records
	if err := codec.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", s.path, err)
	}
	if records == nil {
		records = Records{}
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("Read catalog file")

	return records, nil
}

// WriteAll replaces the catalog file with records.
func (s *JSONFile) WriteAll(ctx context.Context, records Records) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = Records{}
	}

	data, err := encode(records)
	if err != nil {
		return errors.NewIOError("encode", s.path, err)
	}

	if err := s.replace(data); err != nil {
		return err
	}

	s.logger.Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("Wrote catalog file")

	return nil
}

// encode renders records as an indented JSON document ending in a newline.
func encode(records Records) ([]byte, error) {
	compact, err := codec.Marshal(records)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(compact) * 2)
	if err := json.Indent(&buf, compact, "", constants.JSONIndent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Reset replaces the catalog file with an empty JSON object.
func (s *JSONFile) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.replace([]byte("{}\n")); err != nil {
		return err
	}

	s.logger.Debug().Str("path", s.path).Msg("Reset catalog file")
	return nil
}

// Quarantine renames the catalog file to <path>.corrupt, replacing any
// earlier backup.
func (s *JSONFile) Quarantine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	backup := s.path + constants.CorruptSuffix
	if err := s.fs.Rename(s.path, backup); err != nil {
		return "", errors.WrapIO("rename", s.path, err)
	}

	s.logger.Warn().
		Str("path", s.path).
		Str("backup", backup).
		Msg("Moved unreadable catalog file aside")

	return backup, nil
}

// replace writes data to a temporary file next to the catalog file and
// renames it over the original, so a reader never sees a partial write.
func (s *JSONFile) replace(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func(op string, cause error) error {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO(op, tmpName, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO("close", tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, constants.FilePermissions); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.WrapIO("rename", s.path, err)
	}

	return nil
}
