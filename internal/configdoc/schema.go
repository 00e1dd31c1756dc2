// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"grimm.is/compdoc/internal/metadata"
)

// SchemaDialect is the JSON Schema draft of generated schemas.
const SchemaDialect = "https://json-schema.org/draft/2020-12/schema"

// ConfigSchema represents a schema document for component configuration.
type ConfigSchema struct {
	Schema      string                   `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID          string                   `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title       string                   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string                   `json:"type,omitempty" yaml:"type,omitempty"`
	Definitions map[string]*ConfigSchema `json:"$defs,omitempty" yaml:"$defs,omitempty"`
	Properties  map[string]*ConfigSchema `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Property-level fields
	Items      *ConfigSchema `json:"items,omitempty" yaml:"items,omitempty"`
	Default    any           `json:"default,omitempty" yaml:"default,omitempty"`
	ConfigType string        `json:"x-configuration-type,omitempty" yaml:"x-configuration-type,omitempty"`
	EnabledIf  string        `json:"x-enabled-if,omitempty" yaml:"x-enabled-if,omitempty"`
	Ref        string        `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// GenerateSchema builds a schema with one property per component.
//
// Every component and every typed object node becomes a definition. Typed
// nodes with the same type tag and the same structure share a definition.
// With useAnchors, references are the definition pointers themselves so
// ToYAMLNode can emit anchors and aliases; otherwise they are "$ref" strings.
func GenerateSchema(doc *Document, useAnchors bool) *ConfigSchema {
	js := &ConfigSchema{
		Schema:      SchemaDialect,
		Title:       doc.Title,
		Type:        "object",
		Properties:  make(map[string]*ConfigSchema),
		Definitions: make(map[string]*ConfigSchema),
	}

	b := &schemaBuilder{
		defs:       js.Definitions,
		bySig:      make(map[string]string),
		useAnchors: useAnchors,
	}

	for _, s := range doc.Sections {
		def := &ConfigSchema{
			Title:       s.Title,
			Description: s.Description,
			Type:        "object",
			Properties:  make(map[string]*ConfigSchema),
		}
		rows := make(map[string]Row, len(s.Rows))
		for _, r := range s.Rows {
			rows[r.Path] = r
		}
		for _, root := range s.Component.Roots {
			def.Properties[root.Name] = b.node(root, rows)
		}

		name := b.reserve(s.Name)
		js.Definitions[name] = def
		js.Properties[s.Name] = b.reference(name, s.Description)
	}

	return js
}

type schemaBuilder struct {
	defs       map[string]*ConfigSchema
	bySig      map[string]string // structure signature -> definition name
	useAnchors bool
}

// reference points at a definition.
func (b *schemaBuilder) reference(name, description string) *ConfigSchema {
	if b.useAnchors {
		return b.defs[name]
	}
	return &ConfigSchema{Ref: "#/$defs/" + name, Description: description}
}

// reserve returns an unused definition name based on name.
func (b *schemaBuilder) reserve(name string) string {
	candidate := sanitizeDefName(name)
	for i := 2; ; i++ {
		if _, taken := b.defs[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", sanitizeDefName(name), i)
	}
}

func (b *schemaBuilder) node(n *metadata.Node, rows map[string]Row) *ConfigSchema {
	row := rows[n.Path]

	js := &ConfigSchema{
		Title:       row.DisplayName,
		Description: row.Description,
		Type:        valueTypeToJSONType(n.ValueType),
		ConfigType:  n.Type,
	}
	if row.Condition != "" && row.Condition != AlwaysEnabled {
		js.EnabledIf = strings.TrimRight(row.Condition, "\n")
	}
	if n.Default != nil {
		js.Default = parseDefaultValue(*n.Default, js.Type)
	}

	switch s := n.Shape.(type) {
	case metadata.Object:
		js.Type = "object"
		js.Properties = make(map[string]*ConfigSchema, len(s.Children))
		for _, child := range s.Children {
			js.Properties[child.Name] = b.node(child, rows)
		}
		if n.Type != "" {
			return b.shared(n, js)
		}
	case metadata.Array:
		js.Type = "array"
		js.Items = b.node(s.Element, rows)
	}

	return js
}

// shared registers a typed object as a definition, reusing an existing
// definition with the same type tag and structure.
func (b *schemaBuilder) shared(n *metadata.Node, js *ConfigSchema) *ConfigSchema {
	sig := n.Type + "=" + structureSignature(n)

	name, ok := b.bySig[sig]
	if !ok {
		name = b.reserve(n.Type)
		b.bySig[sig] = name
		def := *js
		def.Title = n.Type
		def.Description = ""
		def.Default = nil
		def.EnabledIf = ""
		b.defs[name] = &def
	}

	if b.useAnchors {
		return b.defs[name]
	}
	return &ConfigSchema{
		Ref:         "#/$defs/" + name,
		Title:       js.Title,
		Description: js.Description,
		Default:     js.Default,
		EnabledIf:   js.EnabledIf,
	}
}

// structureSignature describes the member names and value types below n.
func structureSignature(n *metadata.Node) string {
	var parts []string
	for _, child := range n.Children() {
		part := child.Name + ":" + child.ValueType + ":" + child.Type
		if len(child.Children()) > 0 {
			part += "{" + structureSignature(child) + "}"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ",")
}

// valueTypeToJSONType converts a node value type to a JSON Schema type.
func valueTypeToJSONType(valueType string) string {
	switch valueType {
	case "string", "number", "boolean", "object", "array":
		return valueType
	case "bool":
		return "boolean"
	case "int", "integer", "float":
		return "number"
	default:
		return "string"
	}
}

// sanitizeDefName sanitizes a definition name for JSON Schema.
func sanitizeDefName(name string) string {
	return strings.NewReplacer("/", "_", "~", "_", " ", "_", "#", "_").Replace(name)
}

// parseDefaultValue parses a default value string to the appropriate type.
func parseDefaultValue(def string, jsonType string) any {
	switch jsonType {
	case "boolean":
		if b, err := strconv.ParseBool(def); err == nil {
			return b
		}
	case "number":
		if n, err := strconv.ParseFloat(def, 64); err == nil {
			return n
		}
	case "array", "object":
		var v any
		if err := json.Unmarshal([]byte(def), &v); err == nil {
			return v
		}
	}
	return def
}

// ConfigSchemaToJSON converts a ConfigSchema to pretty-printed JSON.
func ConfigSchemaToJSON(js *ConfigSchema) (string, error) {
	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// definitionNames returns the sorted definition names of js.
func definitionNames(js *ConfigSchema) []string {
	names := make([]string, 0, len(js.Definitions))
	for name := range js.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
