package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/maptotext/mindmap/internal/model"
	appErr "github.com/maptotext/mindmap/internal/pkg/errors"
	"github.com/maptotext/mindmap/internal/repo"
)

// ExportService reads documents for the export collaborator. It never
// mutates the store.
type ExportService struct {
	store    repo.Store
	versions *repo.VersionRepo
	md       goldmark.Markdown
}

func NewExportService(store repo.Store, versions *repo.VersionRepo) *ExportService {
	return &ExportService{
		store:    store,
		versions: versions,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

type ExportPayload struct {
	MindMaps []model.MindMap        `json:"mindmaps"`
	Versions []model.MindMapVersion `json:"versions"`
}

// Export collects every stored map plus its version history into one payload.
func (s *ExportService) Export(ctx context.Context) (*ExportPayload, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	maps := make([]model.MindMap, 0, len(infos))
	for _, info := range infos {
		m, err := s.store.Load(ctx, info.ID)
		if err != nil {
			if appErr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		maps = append(maps, *m)
	}
	versions, err := s.versions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportPayload{MindMaps: maps, Versions: versions}, nil
}

// ExportMindMap renders one map in the requested format: json (raw record),
// text (flattened outline, keyword lists included) or html (bubble text
// treated as GFM markdown).
func (s *ExportService) ExportMindMap(ctx context.Context, id, format string) ([]byte, string, string, error) {
	m, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	switch format {
	case "json":
		content, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, "", "", err
		}
		return content, fmt.Sprintf("mindmap-%s.json", id), "application/json", nil
	case "text":
		return renderText(m), fmt.Sprintf("mindmap-%s.txt", id), "text/plain; charset=utf-8", nil
	case "html":
		content, err := s.renderHTML(m)
		if err != nil {
			return nil, "", "", err
		}
		return content, fmt.Sprintf("mindmap-%s.html", id), "text/html; charset=utf-8", nil
	default:
		return nil, "", "", appErr.ErrInvalid
	}
}

func renderText(m *model.MindMap) []byte {
	var buf bytes.Buffer
	title := m.Title
	if title == "" {
		title = DefaultTitle
	}
	buf.WriteString(title + "\n")
	buf.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)) + "\n\n")
	for i, b := range m.Bubbles {
		fmt.Fprintf(&buf, "%d. %s", i+1, b.Text)
		if b.Importance != "" && b.Importance != model.ImportanceNormal {
			fmt.Fprintf(&buf, " (%s)", b.Importance)
		}
		buf.WriteString("\n")
		if len(b.Keywords) > 0 {
			values := make([]string, 0, len(b.Keywords))
			for _, kw := range b.Keywords {
				values = append(values, kw.Value)
			}
			fmt.Fprintf(&buf, "   keywords: %s\n", strings.Join(values, ", "))
		}
	}
	return buf.Bytes()
}

func (s *ExportService) renderHTML(m *model.MindMap) ([]byte, error) {
	var md bytes.Buffer
	title := m.Title
	if title == "" {
		title = DefaultTitle
	}
	fmt.Fprintf(&md, "# %s\n\n", title)
	for _, b := range m.Bubbles {
		if b.Importance != "" && b.Importance != model.ImportanceNormal {
			fmt.Fprintf(&md, "**%s**\n\n", b.Importance)
		}
		fmt.Fprintf(&md, "%s\n\n", b.Text)
		for _, kw := range b.Keywords {
			fmt.Fprintf(&md, "- %s\n", kw.Value)
		}
		if len(b.Keywords) > 0 {
			md.WriteString("\n")
		}
	}
	var out bytes.Buffer
	if err := s.md.Convert(md.Bytes(), &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
