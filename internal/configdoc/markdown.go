// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"strings"
	"unicode"
)

// GenerateMarkdown generates GitHub-flavored Markdown documentation.
func GenerateMarkdown(doc *Document) string {
	var sb strings.Builder

	level := doc.Level
	if level < 1 {
		level = DefaultLevel
	}

	// Title and table of contents
	if doc.Title != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Title))
		if doc.Version != "" {
			sb.WriteString(fmt.Sprintf("**Version:** %s\n\n", doc.Version))
		}

		sb.WriteString("## Table of Contents\n\n")
		for _, s := range doc.Sections {
			sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", s.Title, anchor(s.Title)))
		}
		sb.WriteString("\n")
	}

	for i, s := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeMarkdownSection(&sb, s, level)
	}

	return sb.String()
}

// writeMarkdownSection writes a component's documentation.
func writeMarkdownSection(sb *strings.Builder, s *Section, level int) {
	sb.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), s.Title))

	if s.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", s.Description))
	}

	sb.WriteString(fmt.Sprintf("%s Configuration\n\n", strings.Repeat("#", level+1)))
	writeRowsTable(sb, s.Rows)
}

// writeRowsTable writes a markdown table for rows.
func writeRowsTable(sb *strings.Builder, rows []Row) {
	sb.WriteString("| " + strings.Join(Columns, " | ") + " |\n")
	sb.WriteString(strings.Repeat("|---", len(Columns)) + "|\n")

	for _, r := range rows {
		cells := r.Cells()
		for i, c := range cells {
			cells[i] = escapeMarkdownCell(c)
		}
		// Paths are literal identifiers.
		cells[4] = "`" + cells[4] + "`"
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

// escapeMarkdownCell makes text safe inside a table cell. HTML
// metacharacters are escaped outside code spans, pipes everywhere, and line
// breaks become <br>.
func escapeMarkdownCell(s string) string {
	s = strings.TrimRight(s, "\n")

	var sb strings.Builder
	inCode := false
	for _, r := range s {
		switch {
		case r == '`':
			inCode = !inCode
			sb.WriteRune(r)
		case r == '|':
			sb.WriteString(`\|`)
		case r == '\n':
			sb.WriteString("<br>")
		case inCode:
			sb.WriteRune(r)
		case r == '&':
			sb.WriteString("&amp;")
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// anchor returns the heading identifier generated for title.
func anchor(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

// GenerateQuickReference generates a compact HCL-style quick reference.
func GenerateQuickReference(doc *Document) string {
	var sb strings.Builder

	title := doc.Title
	if title == "" {
		title = "Component Configuration"
	}
	sb.WriteString(fmt.Sprintf("# %s Quick Reference\n", title))
	if doc.Version != "" {
		sb.WriteString(fmt.Sprintf("# Version: %s\n", doc.Version))
	}
	sb.WriteString("\n")

	for _, s := range doc.Sections {
		family := ""
		if s.Family != "" {
			family = fmt.Sprintf("  # family: %s", s.Family)
		}
		sb.WriteString(fmt.Sprintf("component %q {%s\n", s.Name, family))
		for _, r := range s.Rows {
			writeQuickRefRow(&sb, r)
		}
		sb.WriteString("}\n\n")
	}

	return sb.String()
}

func writeQuickRefRow(sb *strings.Builder, r Row) {
	prefix := strings.Repeat("  ", r.Depth+1)

	typeStr := r.ValueType
	if typeStr == "" {
		typeStr = "any"
	}

	notes := []string{"default=" + r.Default}
	if r.Type != NoType {
		notes = append(notes, "type="+r.Type)
	}
	if r.Condition != AlwaysEnabled {
		notes = append(notes, "conditional")
	}

	sb.WriteString(fmt.Sprintf("%s%s = <%s>  # %s\n", prefix, r.Path, typeStr, strings.Join(notes, ", ")))
}
