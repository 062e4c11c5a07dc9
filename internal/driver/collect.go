package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"autocorrect/internal/config"
	"autocorrect/internal/dialect"
)

// ErrNoFiles is returned when the given paths hold no supported files.
var ErrNoFiles = errors.New("no supported files found")

// CollectFiles expands paths into a sorted, de-duplicated file list.
// Directories are walked recursively, skipping hidden entries; inside them
// only files with a known dialect are taken. Files named explicitly are
// always taken.
func CollectFiles(ctx context.Context, paths []string, cfg *config.Snapshot) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != p && isHidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if known(path, cfg) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}

// known reports whether path maps to a dialect without looking at content.
func known(path string, cfg *config.Snapshot) bool {
	cls := dialect.Detect(path, nil, cfg)
	return cls.Score > 0
}

// Supported reports whether a directory walk would take path.
func Supported(path string, cfg *config.Snapshot) bool {
	return !isHidden(filepath.Base(path)) && known(path, cfg)
}
