// Package vault scans a directory of linked markdown notes and produces the
// document set the graph builder consumes.
package vault

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/forgenotes/vaultgraph/plugin/markdown"
	"github.com/forgenotes/vaultgraph/plugin/wikilink"
	"github.com/forgenotes/vaultgraph/server/service/graph"
)

const noteExt = ".md"

// skippedDirs are vault-internal directories that never contain notes.
var skippedDirs = map[string]struct{}{
	".git":      {},
	".obsidian": {},
}

// Scanner reads a vault directory into graph documents.
type Scanner struct {
	markdown *markdown.Service
	parallel int
}

// NewScanner creates a scanner with a default read concurrency.
func NewScanner() *Scanner {
	return &Scanner{
		markdown: markdown.NewService(),
		parallel: 8,
	}
}

// Scan walks the vault and parses every note. Unreadable files are skipped
// individually with a warning; duplicate note names keep the last file
// scanned. Documents are returned sorted by name so graph indices stay
// stable across scans.
func (s *Scanner) Scan(ctx context.Context, root string) ([]graph.Document, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, ok := skippedDirs[d.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), noteExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk vault %s", root)
	}

	var mu sync.Mutex
	byName := make(map[string]graph.Document, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.parallel)
	for _, path := range paths {
		p := path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(p)
			if err != nil {
				slog.Warn("skipping unreadable note", "path", p, "error", err)
				return nil
			}

			doc := graph.Document{
				Name:  noteName(p),
				Label: s.markdown.Title(string(content)),
				Links: wikilink.Extract(string(content)),
			}

			mu.Lock()
			byName[doc.Name] = doc
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "scan vault")
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	docs := make([]graph.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, byName[name])
	}

	slog.Info("vault scanned", "root", root, "notes", len(docs))
	return docs, nil
}

// noteName returns the file stem used as the note's graph name.
func noteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
