package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/bstardust/photo-evidence/internal/logger"
	"github.com/bstardust/photo-evidence/internal/record"
)

// Capture dates are shown day-first, the way the report's readers expect.
const dateLayout = "02.01.2006 15:04:05"

const thumbJPEGQuality = 85

// PlaceholderText fills the photo cell when no thumbnail could be made.
const PlaceholderText = "image unavailable"

// HTML renders the evidence table as a single self-contained HTML file.
// Thumbnails are re-encoded as JPEG and embedded as data URIs, so the
// document needs no sidecar files.
type HTML struct {
	Title      string
	ThumbWidth int
}

// NewHTML creates an HTML renderer. thumbWidth is the embedded thumbnail
// width in pixels; height follows the aspect ratio.
func NewHTML(title string, thumbWidth int) *HTML {
	if thumbWidth <= 0 {
		thumbWidth = 360
	}
	return &HTML{Title: title, ThumbWidth: thumbWidth}
}

type row struct {
	Thumbnail template.URL // empty when the image could not be decoded
	Date      string
	Camera    string
	Address   string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { text-align: center; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #444; padding: 8px; vertical-align: top; }
th { background: #eee; }
td.photo { width: 1%; white-space: nowrap; }
img { display: block; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<tr><th>Photograph</th><th>Date and camera</th><th>Location</th></tr>
{{range .Rows}}<tr>
<td class="photo">{{if .Thumbnail}}<img src="{{.Thumbnail}}" alt="photo">{{else}}{{$.Placeholder}}{{end}}</td>
<td>Date: {{.Date}}<br>Camera: {{.Camera}}</td>
<td>{{.Address}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

// Render implements Renderer.
func (h *HTML) Render(records []record.Record, outPath string) error {
	rows := make([]row, 0, len(records))
	for i, rec := range records {
		r := row{
			Date:    rec.TakenAt.Format(dateLayout),
			Camera:  rec.CameraModel,
			Address: rec.Address,
		}
		if rec.Image != nil {
			uri, err := h.thumbnailURI(rec.Image)
			if err != nil {
				logger.Warn("thumbnail encoding failed for %s: %v", rec.Path, err)
			} else {
				r.Thumbnail = uri
			}
		}
		rows = append(rows, r)
		logger.Info("added photo %d/%d to the report", i+1, len(records))
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	data := struct {
		Title       string
		Placeholder string
		Rows        []row
	}{h.Title, PlaceholderText, rows}

	if err := reportTemplate.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	return f.Close()
}

func (h *HTML) thumbnailURI(img image.Image) (template.URL, error) {
	thumb := imaging.Resize(img, h.ThumbWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbJPEGQuality)); err != nil {
		return "", err
	}
	return template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}
