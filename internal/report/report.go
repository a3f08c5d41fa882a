// Package report renders ordered photo records into the output document.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bstardust/photo-evidence/internal/record"
)

// Renderer writes the final document for an ordered set of records.
type Renderer interface {
	Render(records []record.Record, outPath string) error
}

// OutputPath builds the report file name inside dir. The leading "!_"
// keeps the report first in the folder listing; the timestamp is the
// generation time, not any photo's capture time.
func OutputPath(dir, prefix, ext string, now time.Time) string {
	name := fmt.Sprintf("!_%s_%s.%s", prefix, now.Format("2006-01-02_15-04"), ext)
	return filepath.Join(dir, name)
}
