package xlsx2docx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// tempPattern names in-progress documents inside the output directory.
const tempPattern = ".xlsx2docx-*.tmp"

// readSource reads a named input after checking that it exists.
// kind ("data" or "template") prefixes the error message.
func readSource(fsys afero.Fs, kind, path string) ([]byte, error) {
	if path == "" {
		return nil, &InputError{Kind: kind, Err: ErrEmptyPath}
	}
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &InputError{Kind: kind, Path: path, Err: ErrInputMissing}
		}
		return nil, &InputError{Kind: kind, Path: path, Err: fmt.Errorf("file cannot be accessed: %w", err)}
	}
	if info.IsDir() {
		return nil, &InputError{Kind: kind, Path: path, Err: fmt.Errorf("%w (is a directory)", ErrInputMissing)}
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &InputError{Kind: kind, Path: path, Err: fmt.Errorf("file cannot be read: %w", err)}
	}
	return data, nil
}

// ensureDir creates dir and its parents. An existing directory is not an error.
func ensureDir(fsys afero.Fs, dir string) error {
	if err := fsys.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w %s: %w", ErrOutputDir, dir, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a failed write never leaves a truncated document at path.
func writeFileAtomic(fsys afero.Fs, path string, data []byte) (err error) {
	tmp, err := afero.TempFile(fsys, filepath.Dir(path), tempPattern)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpName, filePermissions); err != nil {
		return err
	}
	return fsys.Rename(tmpName, path)
}
