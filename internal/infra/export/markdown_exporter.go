// Package export renders journal entries into documents and stores them.
package export

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"journal/internal/domain/entity"
	"journal/internal/domain/service"
	"journal/internal/errors"

	"github.com/muesli/reflow/wordwrap"
)

const (
	markdownContentType = "text/markdown; charset=utf-8"
	wrapWidth           = 80
)

var markdownTemplate = template.Must(template.New("journal").Funcs(template.FuncMap{
	"longDate":  func(t time.Time) string { return t.Format("January 02, 2006") },
	"stamp":     func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"moodNames": moodNames,
	"tagNames":  tagNames,
	"wrap":      func(s string) string { return wordwrap.String(strings.TrimSpace(s), wrapWidth) },
	"words":     entity.WordCount,
}).Parse(`# Journal Entries

Date range: {{ .From }} to {{ .To }}
Entries: {{ len .Entries }}
{{ range .Entries }}
---

## {{ longDate .EntryDate }}: {{ .Title }}

- Mood: {{ with .PrimaryMood.Glyph }}{{ . }} {{ end }}{{ .PrimaryMood.Name }}
{{- with moodNames .SecondaryMoods }}
- Secondary moods: {{ . }}
{{- end }}
{{- with tagNames .Tags }}
- Tags: {{ . }}
{{- end }}
- Words: {{ words .Content }}
{{ with wrap .Content }}
{{ . }}
{{ end }}
_Created {{ stamp .CreatedAt }}{{ if .UpdatedAt.After .CreatedAt }}, updated {{ stamp .UpdatedAt }}{{ end }}_
{{ end }}`))

type markdownExporter struct{}

// NewMarkdownExporter returns a DocumentExporter producing a Markdown document.
func NewMarkdownExporter() service.DocumentExporter {
	return markdownExporter{}
}

func (markdownExporter) Render(entries []*entity.Entry, window entity.DateRange) ([]byte, error) {
	n := window.Normalized()
	data := struct {
		From, To string
		Entries  []*entity.Entry
	}{
		From:    boundLabel(n.Start, "start"),
		To:      boundLabel(n.End, "end"),
		Entries: entries,
	}

	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "render markdown export")
	}

	return buf.Bytes(), nil
}

func (markdownExporter) ContentType() string {
	return markdownContentType
}

func (markdownExporter) Extension() string {
	return ".md"
}

func boundLabel(t *time.Time, open string) string {
	if t == nil {
		return open
	}

	return t.Format(time.DateOnly)
}

func moodNames(moods []entity.Mood) string {
	names := make([]string, 0, len(moods))
	for _, m := range moods {
		names = append(names, m.Name)
	}

	return strings.Join(names, ", ")
}

func tagNames(tags []entity.Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}

	return strings.Join(names, ", ")
}
