// Package pipeline drives the scan → build → sort → render flow for one
// folder of photographs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bstardust/photo-evidence/internal/logger"
	"github.com/bstardust/photo-evidence/internal/progress"
	"github.com/bstardust/photo-evidence/internal/record"
	"github.com/bstardust/photo-evidence/internal/report"
	"github.com/bstardust/photo-evidence/internal/worker"
)

// Folder-level errors. Unlike per-file skips these abort the whole run
// before anything is written.
var (
	ErrFolderNotFound   = errors.New("folder not found")
	ErrNotADirectory    = errors.New("not a directory")
	ErrNoSupportedFiles = errors.New("no supported photos in folder")
	ErrNoValidRecords   = errors.New("no photo contained usable metadata")
)

// Extension matching is case-insensitive; the report covers JPEG and
// HEIC/HEIF sources.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".heic": true,
	".heif": true,
}

// IsSupported reports whether the file name has a supported photo
// extension.
func IsSupported(name string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(name))]
}

// ListPhotos enumerates supported files directly inside dir (non
// recursive), sorted by name.
func ListPhotos(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
		}
		return nil, fmt.Errorf("access folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	var photos []string
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name()) {
			continue
		}
		photos = append(photos, filepath.Join(dir, e.Name()))
	}
	if len(photos) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSupportedFiles, dir)
	}

	sort.Strings(photos)
	return photos, nil
}

// Pipeline processes one folder into one report document.
type Pipeline struct {
	builder  *record.Builder
	renderer report.Renderer
	pool     *worker.Pool
	progress *progress.Reporter
}

// New creates a Pipeline.
func New(builder *record.Builder, renderer report.Renderer, pool *worker.Pool, reporter *progress.Reporter) *Pipeline {
	return &Pipeline{
		builder:  builder,
		renderer: renderer,
		pool:     pool,
		progress: reporter,
	}
}

// Run extracts a record from every supported photo in dir and renders the
// report to outPath. Per-file failures skip the file; only folder-level
// problems or an empty result return an error.
func (p *Pipeline) Run(ctx context.Context, dir, outPath string) error {
	photos, err := ListPhotos(dir)
	if err != nil {
		return err
	}
	logger.Info("Found %d photos in %s", len(photos), dir)

	p.progress.Start(len(photos))

	// Workers fill their own slot, so no locking is needed around results.
	results := make([]*record.Record, len(photos))
	for i, path := range photos {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		i, path := i, path
		p.pool.Submit(func() {
			rec, err := p.builder.Build(ctx, path)
			if err != nil {
				p.progress.Skip(path, err)
				return
			}
			results[i] = rec
			p.progress.Complete(path)
		})
	}
	p.pool.Wait()
	p.progress.Finish()

	records := make([]record.Record, 0, len(results))
	for _, r := range results {
		if r != nil {
			records = append(records, *r)
		}
	}
	if len(records) == 0 {
		return ErrNoValidRecords
	}

	// Workers finish out of order; restore the chronology. Equal
	// timestamps keep path order so repeated runs produce identical
	// documents.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TakenAt.Equal(records[j].TakenAt) {
			return records[i].Path < records[j].Path
		}
		return records[i].TakenAt.Before(records[j].TakenAt)
	})

	logger.Info("Processed %d of %d photos", len(records), len(photos))
	if err := p.renderer.Render(records, outPath); err != nil {
		return err
	}
	logger.Info("Report saved to %s", outPath)
	return nil
}
