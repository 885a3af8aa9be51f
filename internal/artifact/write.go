package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wsgen-labs/wsgen/internal/platform"
	"go.uber.org/multierr"
)

// Writer is the filesystem surface used to materialize artifacts.
type Writer interface {
	WriteFile(name string, data []byte, perm fs.FileMode) error
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Stat(name string) (fs.FileInfo, error)
	Chmod(name string, mode fs.FileMode) error
}

// OSWriter writes to the local filesystem.
type OSWriter struct{}

func (OSWriter) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OSWriter) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (OSWriter) Remove(name string) error { return os.Remove(name) }

func (OSWriter) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSWriter) Chmod(name string, mode fs.FileMode) error { return platform.Chmod(name, mode) }

// File is one artifact ready to be written.
type File struct {
	Name string
	Data []byte
	Mode fs.FileMode
}

// Files lists the bundle's artifacts in write order. The manifest is omitted
// when the bundle has none.
func (b *Bundle) Files() []File {
	files := []File{
		{Name: EnvFile, Data: b.EnvActual, Mode: 0644},
		{Name: EnvExampleFile, Data: b.EnvExample, Mode: 0644},
	}
	if b.Manifest != nil {
		files = append(files, File{Name: ManifestFile, Data: b.Manifest, Mode: 0644})
	}
	return append(files, File{Name: SetupScriptFile, Data: b.SetupScript, Mode: 0755})
}

// Write stores every artifact of b under root. It attempts all files even
// after a failure and returns the names written plus the combined error.
func Write(root string, b *Bundle, w Writer) ([]string, error) {
	if w == nil {
		w = OSWriter{}
	}

	var (
		written []string
		errs    error
	)
	for _, f := range b.Files() {
		path := filepath.Join(root, f.Name)
		if err := w.WriteFile(path, f.Data, f.Mode); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("writing %s: %w", f.Name, err))
			continue
		}
		// WriteFile keeps the mode of an existing file, so set it explicitly.
		if f.Mode&0111 != 0 {
			if err := w.Chmod(path, f.Mode); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("making %s executable: %w", f.Name, err))
				continue
			}
		}
		written = append(written, f.Name)
	}
	return written, errs
}
