// Package export runs the document pipeline: totals, layout, PDF bytes.
// The bytes are produced once; the artifact is then saved, streamed or base64 encoded.
package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"easywork/entity"
	"easywork/internal/calc"
	"easywork/internal/format"
	"easywork/internal/layout"
	"easywork/internal/render"
)

const creator = "EasyWork"

var ErrRender = errors.New("render document")

var (
	titleStrip = regexp.MustCompile(`[^A-Za-z0-9ÆØÅæøå ]`)
	spaces     = regexp.MustCompile(`\s+`)
)

type Artifact struct {
	FileName string
	Data     []byte
}

func (a *Artifact) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

func (a *Artifact) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.Data)
	return int64(n), err
}

// Save writes the artifact into dir under its file name and returns the full path.
func (a *Artifact) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FileName builds "{Prefix}-{number}-{title}.pdf". Characters outside letters, digits,
// Norwegian letters and spaces are dropped and space runs become one underscore. An empty
// title is replaced by the kind's noun, as in "Tilbud-42-tilbud.pdf".
func FileName(kind entity.DocumentKind, number int64, title string, labels *format.Labels) string {
	clean := titleStrip.ReplaceAllString(title, "")
	clean = spaces.ReplaceAllString(strings.TrimSpace(clean), "_")
	names := labels.Kind(kind)
	if clean == "" {
		clean = names.Noun
	}
	return fmt.Sprintf("%s-%d-%s.pdf", names.FilePrefix, number, clean)
}

// Exporter is safe for concurrent use; every call builds its own measurer and layout.
type Exporter struct {
	formatter  *format.Formatter
	quoteTerms string
}

func New(formatter *format.Formatter, quoteTerms string) *Exporter {
	return &Exporter{
		formatter:  formatter,
		quoteTerms: quoteTerms,
	}
}

func (e *Exporter) Formatter() *format.Formatter {
	return e.formatter
}

func (e *Exporter) Export(doc *entity.Document) (*Artifact, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrRender)
	}
	res := calc.Aggregate(doc.Items)
	pages, err := layout.Build(doc, res, layout.Options{
		Formatter:  e.formatter,
		Measurer:   render.NewMeasurer(),
		QuoteTerms: e.quoteTerms,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	labels := e.formatter.Labels()
	data, err := render.Render(pages, render.Meta{
		Title:   fmt.Sprintf("%s %d", labels.Kind(doc.Kind).FilePrefix, doc.Meta.Number),
		Author:  doc.Issuer.Name,
		Creator: creator,
		Created: doc.Meta.CreatedAt.Time,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return &Artifact{
		FileName: FileName(doc.Kind, doc.Meta.Number, doc.Meta.Title, labels),
		Data:     data,
	}, nil
}
