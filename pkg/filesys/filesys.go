// Package filesys provides the small set of file-system helpers the store
// needs: directory bootstrap, existence checks, and best-effort cleanup of
// a stale compaction file left behind by a crash (spec.md §4.3's "recovery
// hygiene" note).
package filesys

import "os"

// EnsureDir creates dirPath (and any missing parents) if it does not
// already exist. It is an error if dirPath exists and is not a directory.
func EnsureDir(dirPath string, perm os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return &os.PathError{Op: "ensuredir", Path: dirPath, Err: os.ErrExist}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, perm)
}

// Exists reports whether path exists, distinguishing "does not exist" from
// a real stat failure.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// RemoveIfExists deletes path if present and is a no-op otherwise.
func RemoveIfExists(path string) error {
	ok, err := Exists(path)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return os.Remove(path)
}
