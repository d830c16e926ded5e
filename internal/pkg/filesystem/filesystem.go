// Package filesystem is an abstraction over the afero filesystems,
// so all components can run against the OS filesystem or an in-memory one in tests.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// Fs is the filesystem interface used by the project.
type Fs interface {
	// Name of the implementation, for example local, memory.
	Name() string
	BasePath() string
	Walk(root string, walkFn filepath.WalkFunc) error
	Exists(path string) bool
	IsFile(path string) bool
	Mkdir(path string) error
	Remove(path string) error
	ReadFile(path, desc string) (*File, error)
	WriteFile(file *File) error
	ReadJSONFileTo(path, desc string, target any) error
	WriteJSONFile(path string, source any) error
}

// File is a named piece of content.
type File struct {
	Path    string
	Desc    string
	Content string
}

func NewFile(path, content string) *File {
	return &File{Path: path, Content: content}
}

func (f *File) SetDesc(desc string) *File {
	f.Desc = desc
	return f
}

// Join joins any number of path elements into a single path.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Dir returns all but the last element of path.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Base returns the last element of path.
func Base(path string) string {
	return filepath.Base(path)
}

type aferoFs struct {
	name     string
	basePath string
	fs       afero.Fs
	utils    *afero.Afero
}

// NewLocalFs creates a filesystem rooted in the given directory of the OS filesystem.
func NewLocalFs(basePath string) (Fs, error) {
	if !filepath.IsAbs(basePath) {
		abs, err := filepath.Abs(basePath)
		if err != nil {
			return nil, errors.PrefixErrorf(err, `cannot resolve path "%s"`, basePath)
		}
		basePath = abs
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.PrefixErrorf(err, `cannot create directory "%s"`, basePath)
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), basePath)
	return &aferoFs{name: "local", basePath: basePath, fs: fs, utils: &afero.Afero{Fs: fs}}, nil
}

// NewMemoryFs creates an in-memory filesystem, used in tests.
func NewMemoryFs() Fs {
	fs := afero.NewMemMapFs()
	return &aferoFs{name: "memory", basePath: "__memory__", fs: fs, utils: &afero.Afero{Fs: fs}}
}

func (f *aferoFs) Name() string {
	return f.name
}

func (f *aferoFs) BasePath() string {
	return f.basePath
}

func (f *aferoFs) Walk(root string, walkFn filepath.WalkFunc) error {
	return f.utils.Walk(root, walkFn)
}

func (f *aferoFs) Exists(path string) bool {
	ok, err := f.utils.Exists(path)
	return err == nil && ok
}

func (f *aferoFs) IsFile(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (f *aferoFs) Mkdir(path string) error {
	if err := f.fs.MkdirAll(path, 0o755); err != nil {
		return errors.PrefixErrorf(err, `cannot create directory "%s"`, path)
	}
	return nil
}

func (f *aferoFs) Remove(path string) error {
	if err := f.fs.RemoveAll(path); err != nil {
		return errors.PrefixErrorf(err, `cannot remove "%s"`, path)
	}
	return nil
}

func (f *aferoFs) ReadFile(path, desc string) (*File, error) {
	content, err := f.utils.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(`missing %s file "%s"`, desc, path)
		}
		return nil, errors.Errorf(`cannot read %s file "%s"`, desc, path)
	}
	return &File{Path: path, Desc: desc, Content: string(content)}, nil
}

func (f *aferoFs) WriteFile(file *File) error {
	if dir := filepath.Dir(file.Path); dir != "." {
		if err := f.Mkdir(dir); err != nil {
			return err
		}
	}
	if err := f.utils.WriteFile(file.Path, []byte(file.Content), 0o644); err != nil {
		return errors.PrefixErrorf(err, `cannot write file "%s"`, file.Path)
	}
	return nil
}

func (f *aferoFs) ReadJSONFileTo(path, desc string, target any) error {
	file, err := f.ReadFile(path, desc)
	if err != nil {
		return err
	}
	if err := json.DecodeString(file.Content, target); err != nil {
		return errors.PrefixErrorf(err, `%s file "%s" is invalid`, desc, path)
	}
	return nil
}

func (f *aferoFs) WriteJSONFile(path string, source any) error {
	content, err := json.EncodeString(source, true)
	if err != nil {
		return errors.PrefixErrorf(err, `cannot encode file "%s"`, path)
	}
	return f.WriteFile(NewFile(path, content))
}
