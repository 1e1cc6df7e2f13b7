package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// LoaderConfig configures draft discovery.
type LoaderConfig struct {
	// Pattern limits discovered files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader discovers Markdown drafts inside a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{fs: filesystem, pattern: pattern, recursive: cfg.Recursive}
}

// LoadFile reads and parses a single draft.
func (l *Loader) LoadFile(ctx context.Context, name string) (*interfaces.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}
	return BuildDraft(name, data, info.ModTime())
}

// LoadDirectory returns every draft under dir sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Draft, error) {
	root := path.Clean(strings.TrimPrefix(dir, "/"))
	if root == "" {
		root = "."
	}

	var drafts []*interfaces.Draft
	err := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if current != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if !l.matches(current) {
			return nil
		}
		draft, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		drafts = append(drafts, draft)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].FilePath < drafts[j].FilePath
	})
	return drafts, nil
}

func (l *Loader) matches(name string) bool {
	pattern := strings.ReplaceAll(l.pattern, "**/", "")
	target := path.Base(name)
	if strings.Contains(pattern, "/") {
		target = name
	}
	ok, err := path.Match(pattern, target)
	return err == nil && ok
}
