// Package fsutil has the filesystem helpers shared by the inject and
// release flows: existence checks and permission-preserving copies.
package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether path names anything at all (file, directory, or
// dangling symlink).
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, err
	}
}

// CopyFile copies a regular file, preserving its permission bits.  The
// destination's parent directory must already exist; an existing
// destination file is truncated.
func CopyFile(dst, src string) (err error) {
	maybeSetErr := func(_err error) {
		if _err != nil && err == nil {
			err = _err
		}
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.Mode().IsRegular() {
		return fmt.Errorf("CopyFile: not a regular file: %q", src)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { maybeSetErr(srcFile.Close()) }()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() { maybeSetErr(dstFile.Close()) }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}
	// In case dst already existed with different permissions.
	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// CopyTree recursively copies the tree rooted at src to dst, creating
// dst itself.  Directories keep their permission bits, symlinks are
// recreated as symlinks, and regular files go through CopyFile.
func CopyTree(dst, src string) error {
	return filepath.Walk(src, func(srcPath string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, srcPath)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, rel)
		switch {
		case info.IsDir():
			return os.MkdirAll(dstPath, info.Mode().Perm())
		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(srcPath)
			if err != nil {
				return err
			}
			return os.Symlink(target, dstPath)
		case info.Mode().IsRegular():
			return CopyFile(dstPath, srcPath)
		default:
			return fmt.Errorf("CopyTree: unsupported file type %v: %q", info.Mode().Type(), srcPath)
		}
	})
}
