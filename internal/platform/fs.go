package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// Permission constants for files and directories written by shadow operations.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// FS is the filesystem capability consumed by the manifest loaders, the
// workspace registry, and the shadow installer.
type FS interface {
	// Exists reports whether path exists.
	Exists(path string) (bool, error)
	// EnsureDir creates path and any parents. It is idempotent.
	EnsureDir(path string) error
	// IsDirEmpty reports whether path has no entries. A missing path is empty.
	IsDirEmpty(path string) (bool, error)
	// ReadDir lists the entries of path.
	ReadDir(path string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// ReadJSON decodes the JSON document at path into v. Numbers decode as
	// json.Number so they round-trip unchanged.
	ReadJSON(path string, v any) error
	// WriteJSON writes v as two-space indented JSON followed by a newline.
	WriteJSON(path string, v any) error
	// CopyFile copies src to dst byte for byte, preserving the mode of src.
	CopyFile(src, dst string) error
}

// AferoFS implements FS on top of an afero filesystem.
type AferoFS struct {
	fs afero.Fs
}

// New wraps an afero filesystem.
func New(fs afero.Fs) *AferoFS {
	return &AferoFS{fs: fs}
}

// NewOSFS returns an FS backed by the host filesystem.
func NewOSFS() *AferoFS {
	return New(afero.NewOsFs())
}

// NewMemFS returns an empty in-memory FS.
func NewMemFS() *AferoFS {
	return New(afero.NewMemMapFs())
}

// Afero exposes the underlying afero filesystem.
func (a *AferoFS) Afero() afero.Fs { return a.fs }

func (a *AferoFS) Exists(path string) (bool, error) {
	ok, err := afero.Exists(a.fs, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

func (a *AferoFS) EnsureDir(path string) error {
	if err := a.fs.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

func (a *AferoFS) IsDirEmpty(path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}

	empty, err := afero.IsEmpty(a.fs, path)
	if err != nil {
		return false, fmt.Errorf("reading directory %s: %w", path, err)
	}
	return empty, nil
}

func (a *AferoFS) ReadDir(path string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}
	return entries, nil
}

func (a *AferoFS) ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

func (a *AferoFS) WriteFile(path string, data []byte) error {
	if err := afero.WriteFile(a.fs, path, data, FilePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

func (a *AferoFS) ReadJSON(path string, v any) error {
	data, err := a.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("parsing JSON %s: %w", path, err)
	}
	return nil
}

func (a *AferoFS) WriteJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return fmt.Errorf("encoding JSON for %s: %w", path, err)
	}
	return a.WriteFile(path, data)
}

func (a *AferoFS) CopyFile(src, dst string) (err error) {
	in, err := a.fs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := a.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// EncodeJSON renders v the way manifests are persisted: two-space indent,
// no HTML escaping (version ranges keep their < and >), trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
