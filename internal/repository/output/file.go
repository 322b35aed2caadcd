package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/fastforge-configs/internal/domain/fastforge"
)

const (
	// DefaultFileMode is applied to written config files.
	DefaultFileMode os.FileMode = 0o644
	// DefaultDirMode is applied to created parent directories.
	DefaultDirMode os.FileMode = 0o755
)

const (
	// OpMkdir marks a failure while creating parent directories.
	OpMkdir = "mkdir"
	// OpWrite marks a failure while writing the file itself.
	OpWrite = "write"
)

// FilesystemError reports a failed directory creation or file write.
type FilesystemError struct {
	// Op is OpMkdir or OpWrite.
	Op string
	// Path is the absolute path that could not be created or written.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is and errors.As.
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// IsFilesystemError reports whether err carries a *FilesystemError.
func IsFilesystemError(err error) bool {
	var fsErr *FilesystemError

	return errors.As(err, &fsErr)
}

// Writer persists a single entry.
type Writer interface {
	Write(ctx context.Context, entry fastforge.TemplateEntry) error
	Destination(relativePath string) string
}

// FileWriter writes entries below root.
type FileWriter struct {
	// root is the directory every relative path is resolved against.
	root string
	// fileMode is the permission set used for written files.
	fileMode os.FileMode
	// dirMode is the permission set used for created directories.
	dirMode os.FileMode
	// atomic switches from truncate-and-write to temp file plus rename.
	atomic bool
}

// Option customizes a FileWriter.
type Option func(w *FileWriter)

// WithAtomicReplace makes writes go through a temporary file that is renamed over the target.
func WithAtomicReplace(enabled bool) Option {
	return func(w *FileWriter) {
		w.atomic = enabled
	}
}

// WithFileMode overrides DefaultFileMode.
func WithFileMode(mode os.FileMode) Option {
	return func(w *FileWriter) {
		w.fileMode = mode
	}
}

// WithDirMode overrides DefaultDirMode.
func WithDirMode(mode os.FileMode) Option {
	return func(w *FileWriter) {
		w.dirMode = mode
	}
}

// NewFileWriter creates a writer rooted at root.
func NewFileWriter(root string, opts ...Option) *FileWriter {
	w := &FileWriter{
		root:     filepath.Clean(root),
		fileMode: DefaultFileMode,
		dirMode:  DefaultDirMode,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Root returns the output root.
func (w *FileWriter) Root() string {
	return w.root
}

// Destination resolves a forward-slash relative path against the root.
func (w *FileWriter) Destination(relativePath string) string {
	return filepath.Join(w.root, filepath.FromSlash(relativePath))
}

// Write creates the parent directories of the entry and replaces its file.
func (w *FileWriter) Write(ctx context.Context, entry fastforge.TemplateEntry) error {
	if err := fastforge.ValidatePath(entry.RelativePath); err != nil {
		return err
	}

	dest := w.Destination(entry.RelativePath)

	if err := os.MkdirAll(filepath.Dir(dest), w.dirMode); err != nil {
		return &FilesystemError{Op: OpMkdir, Path: filepath.Dir(dest), Err: err}
	}

	var err error
	if w.atomic {
		err = replaceFile(ctx, dest, []byte(entry.Content), w.fileMode)
	} else {
		err = os.WriteFile(dest, []byte(entry.Content), w.fileMode)
	}

	if err != nil {
		return &FilesystemError{Op: OpWrite, Path: dest, Err: err}
	}

	return nil
}
