// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metadata

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"strings"

	"grimm.is/compdoc/internal/errors"
)

// OptionTag is the struct tag key that marks a field as a configuration option.
const OptionTag = "option"

// Annotation holds the @-annotations parsed from a doc comment:
//
//	// @component: my
//	// @family: test
//	// @type: dataset
//	// @displayName: conf With Dataset
//	// @default: unknown
//	// @activeIf: type == mysql|oracle
type Annotation struct {
	Component   string
	Family      string
	Type        string
	DisplayName string
	Default     *string
	ActiveIf    []string
}

// ParsedStruct is a Go struct type that is either a component or a
// configuration group.
type ParsedStruct struct {
	Name       string
	Doc        string
	Annotation Annotation
	Fields     []ParsedField
	SourceFile string
}

// ParsedField is a struct field carrying an option tag.
type ParsedField struct {
	Name       string
	GoType     string
	Option     string
	Doc        string
	Annotation Annotation
}

// GoParser extracts component metadata from annotated Go source files.
type GoParser struct {
	fset    *token.FileSet
	structs map[string]*ParsedStruct
	order   []string // declaration order of struct names
}

// NewGoParser creates an empty Go source parser.
func NewGoParser() *GoParser {
	return &GoParser{
		fset:    token.NewFileSet(),
		structs: make(map[string]*ParsedStruct),
	}
}

// ParseFile parses one Go source file and records its annotated structs.
// Files must be added in a stable order; declaration order drives output order.
func (p *GoParser) ParseFile(path string, src []byte) error {
	file, err := parser.ParseFile(p.fset, path, src, parser.ParseComments)
	if err != nil {
		return errors.WithSource(errors.Wrap(err, errors.KindInput, "failed to parse Go source"), path)
	}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}

			docGroup := typeSpec.Doc
			if docGroup == nil && len(genDecl.Specs) == 1 {
				docGroup = genDecl.Doc
			}

			parsed := p.parseStruct(typeSpec.Name.Name, structType, docGroup)
			if parsed.Annotation.Component == "" && len(parsed.Fields) == 0 {
				continue
			}
			parsed.SourceFile = path

			if _, exists := p.structs[parsed.Name]; exists {
				return errors.WithSource(errors.Errorf(errors.KindInput, "type %s is declared twice", parsed.Name), path)
			}
			p.structs[parsed.Name] = parsed
			p.order = append(p.order, parsed.Name)
		}
	}

	return nil
}

// parseStruct parses a struct definition into a ParsedStruct.
func (p *GoParser) parseStruct(name string, s *ast.StructType, docGroup *ast.CommentGroup) *ParsedStruct {
	doc := extractDocComment(docGroup)
	parsed := &ParsedStruct{
		Name:       name,
		Doc:        cleanDescription(doc),
		Annotation: parseAnnotations(doc),
	}

	if s.Fields == nil {
		return parsed
	}

	for _, field := range s.Fields.List {
		if len(field.Names) == 0 {
			continue // embedded field
		}

		pf := p.parseField(field)
		if pf.Option != "" && pf.Option != "-" {
			parsed.Fields = append(parsed.Fields, pf)
		}
	}

	return parsed
}

// parseField parses a struct field into a ParsedField.
func (p *GoParser) parseField(field *ast.Field) ParsedField {
	pf := ParsedField{
		Name:   field.Names[0].Name,
		GoType: typeToString(field.Type),
	}

	doc := extractDocComment(field.Doc)
	if field.Comment != nil {
		inlineDoc := extractDocComment(field.Comment)
		if doc == "" {
			doc = inlineDoc
		} else if inlineDoc != "" {
			doc = doc + "\n" + inlineDoc
		}
	}
	pf.Doc = cleanDescription(doc)
	pf.Annotation = parseAnnotations(doc)

	if field.Tag != nil {
		tag := strings.Trim(field.Tag.Value, "`")
		opt := reflect.StructTag(tag).Get(OptionTag)
		pf.Option, _, _ = strings.Cut(opt, ",")
	}

	return pf
}

// Components builds the descriptors of every @component struct, in
// declaration order.
func (p *GoParser) Components() ([]*ComponentDescriptor, error) {
	var out []*ComponentDescriptor

	for _, name := range p.order {
		ps := p.structs[name]
		if ps.Annotation.Component == "" {
			continue
		}

		c := &ComponentDescriptor{
			Name:        ps.Annotation.Component,
			Family:      ps.Annotation.Family,
			DisplayName: ps.Annotation.DisplayName,
			Description: ps.Doc,
			Source:      ps.SourceFile,
		}

		for _, f := range ps.Fields {
			node, err := p.buildNode(f, "", map[string]bool{name: true})
			if err != nil {
				return nil, errors.WithComponent(err, c.Name, ps.SourceFile)
			}
			c.Roots = append(c.Roots, node)
		}

		out = append(out, c)
	}

	return out, nil
}

// buildNode builds the configuration node of a field. visiting guards against
// self-referencing configuration types.
func (p *GoParser) buildNode(f ParsedField, parentPath string, visiting map[string]bool) (*Node, error) {
	path := ChildPath(parentPath, f.Option)

	node := &Node{
		Name:        f.Option,
		Path:        path,
		DisplayName: f.Annotation.DisplayName,
		Description: f.Doc,
		Default:     f.Annotation.Default,
		Type:        f.Annotation.Type,
	}

	for _, raw := range f.Annotation.ActiveIf {
		pred, err := ParsePredicate(raw)
		if err != nil {
			return nil, errors.WithPath(errors.Wrapf(err, errors.KindInput, "invalid @activeIf on %s", path), path)
		}
		node.Condition.Predicates = append(node.Condition.Predicates, pred)
	}

	goType := strings.TrimPrefix(f.GoType, "*")

	if elemType, ok := strings.CutPrefix(goType, "[]"); ok {
		element, err := p.buildElement(f.Option, strings.TrimPrefix(elemType, "*"), path, visiting)
		if err != nil {
			return nil, err
		}
		node.Shape = Array{Element: element}
		node.ValueType = "array"
		return node, nil
	}

	ref := p.structs[goType]
	if ref == nil {
		node.Shape = Scalar{}
		node.ValueType = goTypeToValueType(goType)
		return node, nil
	}

	if node.Description == "" {
		node.Description = ref.Doc
	}
	if node.Type == "" {
		node.Type = ref.Annotation.Type
	}

	obj, err := p.buildObject(ref, path, visiting)
	if err != nil {
		return nil, err
	}
	node.Shape = obj
	node.ValueType = "object"
	return node, nil
}

func (p *GoParser) buildElement(arrayName, elemType, arrayPath string, visiting map[string]bool) (*Node, error) {
	node := &Node{
		Name: arrayName + IndexPlaceholder,
		Path: ElementPath(arrayPath),
	}

	ref := p.structs[elemType]
	if ref == nil {
		node.Shape = Scalar{}
		node.ValueType = goTypeToValueType(elemType)
		return node, nil
	}

	node.Type = ref.Annotation.Type
	obj, err := p.buildObject(ref, node.Path, visiting)
	if err != nil {
		return nil, err
	}
	node.Shape = obj
	node.ValueType = "object"
	return node, nil
}

func (p *GoParser) buildObject(ref *ParsedStruct, path string, visiting map[string]bool) (Object, error) {
	if visiting[ref.Name] {
		return Object{}, errors.WithPath(errors.Errorf(errors.KindInput, "configuration type %s references itself at %s", ref.Name, path), path)
	}
	visiting[ref.Name] = true
	defer delete(visiting, ref.Name)

	obj := Object{}
	for _, f := range ref.Fields {
		child, err := p.buildNode(f, path, visiting)
		if err != nil {
			return Object{}, err
		}
		obj.Children = append(obj.Children, child)
	}
	return obj, nil
}

// parseAnnotations extracts @-annotations from a doc comment.
func parseAnnotations(doc string) Annotation {
	ann := Annotation{}

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}

		key, value, ok := strings.Cut(line[1:], ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "component":
			ann.Component = value
		case "family":
			ann.Family = value
		case "type":
			ann.Type = value
		case "displayName":
			ann.DisplayName = value
		case "default":
			ann.Default = StringPtr(strings.Trim(value, "\""))
		case "activeIf":
			ann.ActiveIf = append(ann.ActiveIf, value)
		}
	}

	return ann
}

// extractDocComment extracts clean doc text from a comment group.
func extractDocComment(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// cleanDescription removes annotation lines from a doc comment.
func cleanDescription(doc string) string {
	lines := strings.Split(doc, "\n")
	var clean []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			continue
		}
		clean = append(clean, line)
	}
	return strings.TrimSpace(strings.Join(clean, "\n"))
}

// typeToString converts an AST type expression to a string.
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeToString(t.X)
	case *ast.ArrayType:
		return "[]" + typeToString(t.Elt)
	case *ast.MapType:
		return "map[" + typeToString(t.Key) + "]" + typeToString(t.Value)
	case *ast.SelectorExpr:
		return typeToString(t.X) + "." + t.Sel.Name
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}

// goTypeToValueType maps Go scalar types to schema value types.
func goTypeToValueType(goType string) string {
	if strings.HasPrefix(goType, "map[") {
		return "object"
	}

	switch goType {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return "number"
	default:
		return ""
	}
}

func isGoSource(path string) bool {
	return filepath.Ext(path) == ".go" && !strings.HasSuffix(path, "_test.go")
}
