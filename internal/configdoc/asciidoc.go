// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"io"
	"strings"
)

// TableCols is the AsciiDoc column specification of configuration tables.
const TableCols = `[cols="d,d,m,a,e,d",options="header"]`

// GenerateAsciidoc renders the document as AsciiDoc.
func GenerateAsciidoc(doc *Document) string {
	var sb strings.Builder

	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("= %s\n", doc.Title))
		if doc.Version != "" {
			sb.WriteString(fmt.Sprintf(":revnumber: %s\n", doc.Version))
		}
		sb.WriteString(":toc:\n\n")
	}

	level := doc.Level
	if level < 1 {
		level = DefaultLevel
	}

	for i, section := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeAsciidocSection(&sb, section, level)
	}

	return sb.String()
}

// WriteAsciidoc writes the AsciiDoc rendering of doc to w.
func WriteAsciidoc(w io.Writer, doc *Document) error {
	_, err := io.WriteString(w, GenerateAsciidoc(doc))
	return err
}

func writeAsciidocSection(sb *strings.Builder, s *Section, level int) {
	sb.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("=", level), s.Title))

	if s.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", s.Description))
	}

	sb.WriteString(fmt.Sprintf("%s Configuration\n\n", strings.Repeat("=", level+1)))
	sb.WriteString(TableCols + "\n")
	sb.WriteString("|===\n")
	writeAsciidocRow(sb, Columns)
	for _, row := range s.Rows {
		writeAsciidocRow(sb, row.Cells())
	}
	sb.WriteString("|===\n")
}

func writeAsciidocRow(sb *strings.Builder, cells []string) {
	for _, cell := range cells {
		sb.WriteString("|")
		sb.WriteString(escapeAsciidocCell(cell))
	}
	sb.WriteString("\n")
}

// escapeAsciidocCell escapes cell separators inside cell text.
func escapeAsciidocCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
