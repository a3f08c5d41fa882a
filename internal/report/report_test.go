package report

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bstardust/photo-evidence/internal/record"
)

func TestOutputPathFormat(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 5, 33, 0, time.Local)
	got := OutputPath("/photos/case-42", "PHOTO_EVIDENCE", "html", now)
	assert.Equal(t, filepath.Join("/photos/case-42", "!_PHOTO_EVIDENCE_2026-08-28_14-05.html"), got)
}

func TestHTMLRender(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "report.html")

	records := []record.Record{
		{
			Path:        "a.jpg",
			Image:       imaging.New(32, 24, color.NRGBA{R: 200, A: 255}),
			TakenAt:     time.Date(2023, 7, 14, 12, 30, 45, 0, time.Local),
			CameraModel: "Canon EOS 5D",
			Address:     "Via Appia, Roma",
		},
		{
			Path:        "b.heic",
			Image:       nil,
			TakenAt:     time.Date(2023, 7, 15, 9, 0, 0, 0, time.Local),
			CameraModel: record.ModelUnknown,
			Address:     record.NoCoordinates,
		},
	}

	r := NewHTML("Photo Evidence Table", 160)
	require.NoError(t, r.Render(records, outPath))

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	doc := string(raw)

	assert.Contains(t, doc, "<title>Photo Evidence Table</title>")
	assert.Contains(t, doc, "data:image/jpeg;base64,")
	assert.Contains(t, doc, PlaceholderText)
	assert.Contains(t, doc, "Via Appia, Roma")
	assert.Contains(t, doc, record.NoCoordinates)
	assert.Contains(t, doc, "Date: 14.07.2023 12:30:45")
	assert.Contains(t, doc, "Camera: Canon EOS 5D")

	// Rows keep the order they were given in.
	assert.Less(t, strings.Index(doc, "Via Appia, Roma"), strings.Index(doc, record.NoCoordinates))
}

func TestHTMLRenderCreateError(t *testing.T) {
	r := NewHTML("t", 100)
	err := r.Render(nil, filepath.Join(t.TempDir(), "no", "such", "dir", "x.html"))
	assert.Error(t, err)
}
