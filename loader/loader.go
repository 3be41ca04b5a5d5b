// Package loader reads settings overrides from files.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Unmarshal is any function that maps the source bytes to the provided
// value.
type Unmarshal func(src []byte, v any) error

// Decoder is implemented by the packages under decoders.
type Decoder interface {
	Format() string
	Unmarshal(data []byte, v any) error
}

type File struct {
	Path      string
	Unmarshal Unmarshal
	Optional  bool
}

// Loader represents a set of file paths and the appropriate
// unmarshal function for the given file.
type Loader struct {
	decoders map[string]Unmarshal
	files    []File
}

func NewLoader(decoders map[string]Unmarshal) (*Loader, error) {
	l := &Loader{
		decoders: make(map[string]Unmarshal),
		files:    make([]File, 0),
	}

	for format, decoder := range decoders {
		if err := l.RegisterDecoder(format, decoder); err != nil {
			return nil, fmt.Errorf("failed to register decoder for format %q: %w", format, err)
		}
	}

	return l, nil
}

// AddFile appends a new file to the list of files. Optional files may be
// missing when overrides are read.
func (f *Loader) AddFile(path string, optional bool) error {
	if path == "" {
		return nil
	}

	fileExt := strings.TrimPrefix(filepath.Ext(path), ".")

	decoder, ok := f.decoders[fileExt]
	if !ok {
		return fmt.Errorf("no decoder registered for format %q", fileExt)
	}

	f.files = append(f.files, File{path, decoder, optional})

	return nil
}

// AddFiles appends multiple files to the list of files.
func (f *Loader) AddFiles(paths []string, optional bool) error {
	if len(paths) == 0 {
		return nil
	}
	for _, path := range paths {
		if err := f.AddFile(path, optional); err != nil {
			return fmt.Errorf("failed to add file %q: %w", path, err)
		}
	}
	return nil
}

// RegisterDecoder registers a new decoder for the given format.
func (f *Loader) RegisterDecoder(format string, decoder Unmarshal) error {
	if format == "" {
		return errors.New("format cannot be empty")
	}

	if decoder == nil {
		return errors.New("decoder cannot be nil")
	}

	if f.decoders == nil {
		f.decoders = make(map[string]Unmarshal)
	}

	format = strings.TrimPrefix(format, ".")

	if _, ok := f.decoders[format]; ok {
		return fmt.Errorf("decoder for format %q already registered", format)
	}

	f.decoders[format] = decoder

	return nil
}

// Use registers d under its format and the given aliases, e.g. "yml".
func (f *Loader) Use(d Decoder, aliases ...string) error {
	for _, format := range append([]string{d.Format()}, aliases...) {
		if err := f.RegisterDecoder(format, d.Unmarshal); err != nil {
			return err
		}
	}
	return nil
}

// Files returns the files added so far, in order.
func (f *Loader) Files() []File {
	return append([]File(nil), f.files...)
}

// Overrides reads every file in order and merges them into one override
// mapping. The merge is shallow, a key of a later file replaces the whole
// value of that key.
func (f *Loader) Overrides() (map[string]any, error) {
	out := make(map[string]any)

	for _, file := range f.files {
		values, err := file.read()
		if err != nil {
			return nil, err
		}

		for key, value := range values {
			out[key] = value
		}
	}

	return out, nil
}

func (file File) read() (map[string]any, error) {
	src, err := os.Open(file.Path)
	if err != nil {
		if file.Optional && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	values, err := ReadOverrides(src, file.Unmarshal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	return values, nil
}

// ReadOverrides unmarshals the content of src into an override mapping.
// The src will be closed if it is an io.Closer. Empty content is an empty
// mapping.
func ReadOverrides(src io.Reader, unmarshal Unmarshal) (map[string]any, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	if closer, ok := src.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return nil, err
		}
	}

	out := make(map[string]any)
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}

	if err := unmarshal(data, &out); err != nil {
		return nil, err
	}

	if out == nil {
		out = make(map[string]any)
	}

	return out, nil
}
