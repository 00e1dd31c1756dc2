// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package convert

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"grimm.is/compdoc/internal/configdoc"
)

// DefaultTitle is used for pages of untitled documents.
const DefaultTitle = "Component Configuration"

// IntermediateMarkdown is the file name of the HTML Markdown source in the
// work directory.
const IntermediateMarkdown = "document.md"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 80em; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.5em; vertical-align: top; text-align: left; }
th { background: #f4f4f4; }
code { font-family: monospace; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTMLConverter renders the document's Markdown form to a standalone HTML page.
type HTMLConverter struct {
	WorkDir string
}

// Convert writes the HTML page of doc to w.
func (c *HTMLConverter) Convert(ctx context.Context, doc *configdoc.Document, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source := configdoc.GenerateMarkdown(doc)
	if c.WorkDir != "" {
		if err := os.MkdirAll(c.WorkDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(c.WorkDir, IntermediateMarkdown), []byte(source), 0o644); err != nil {
			return err
		}
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(source), &body); err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}

	return pageTemplate.Execute(w, struct {
		Lang  string
		Title string
		Body  template.HTML
	}{
		Lang:  htmlLang(doc.Locale),
		Title: title,
		Body:  template.HTML(body.String()),
	})
}

// htmlLang converts a bundle locale to an HTML lang attribute.
func htmlLang(locale string) string {
	if locale == "" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}
