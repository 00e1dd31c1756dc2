// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc renders component configuration metadata as documentation.
//
// A Document is built from loaded component descriptors and a locale. Each
// component becomes a Section whose configuration tree is flattened into
// table rows. The same model is rendered as:
//   - AsciiDoc, the primary output
//   - Markdown for the HTML pipeline and plain repositories
//   - JSON Schema and YAML for tooling
//   - a compact quick reference
package configdoc
