package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FolderArchive is the folder-backed archive kind: a real OS
// directory tree, indexed once at construction time for case-insensitive
// lookup the way pk3.go's BuildFileIndex indexes a pk3 stack, but walking
// a plain directory instead of a zip central directory.
type FolderArchive struct {
	name string
	root string
	// index maps a normalized (lower-case, backslash-separated) relative
	// path to the real on-disk path, so Get never has to re-walk or
	// guess at the host filesystem's case sensitivity.
	index map[string]string
}

// OpenFolderArchive walks root once and builds the case-insensitive
// index. root must exist and be a directory.
func OpenFolderArchive(root string) (*FolderArchive, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open folder archive %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open folder archive %s: not a directory", root)
	}

	index := make(map[string]string)
	err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := normalizePath(rel)
		index[key] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index folder archive %s: %w", root, err)
	}

	return &FolderArchive{name: root, root: root, index: index}, nil
}

func (a *FolderArchive) Name() string { return a.name }

// Get implements Archive by reading the indexed on-disk path for the
// already-normalized request path.
func (a *FolderArchive) Get(path string) ([]byte, bool, error) {
	real, ok := a.index[path]
	if !ok {
		return nil, false, nil
	}
	data, err := os.ReadFile(real)
	if err != nil {
		return nil, false, fmt.Errorf("%s: read %s: %w", a.name, path, err)
	}
	return data, true, nil
}

// Entries lists the archive's indexed relative paths, for the debug
// manifest.
func (a *FolderArchive) Entries() []string {
	names := make([]string, 0, len(a.index))
	for name := range a.index {
		names = append(names, name)
	}
	return names
}

// Rescan re-walks the directory tree, picking up files added or removed
// on disk since the archive was opened or last rescanned. Folder
// archives are the one backing store where the host filesystem can
// change out from under the VFS (unlike a native archive, which is read
// once as an immutable blob), so this is exposed for callers that want
// to refresh a development asset folder without restarting.
func (a *FolderArchive) Rescan() error {
	fresh, err := OpenFolderArchive(a.root)
	if err != nil {
		return err
	}
	a.index = fresh.index
	return nil
}

// hasExtension reports whether path ends in one of exts, case
// insensitively. Small helper for callers (e.g. the Lua patch pass)
// that need to filter a folder archive's entries by type.
func hasExtension(path string, exts ...string) bool {
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
