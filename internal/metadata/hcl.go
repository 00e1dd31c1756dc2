// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package metadata

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"grimm.is/compdoc/internal/errors"
)

// hclFile is the top level of an HCL component descriptor file.
type hclFile struct {
	Components []*hclComponent `hcl:"component,block"`
}

type hclComponent struct {
	Name          string       `hcl:"name,label"`
	Family        string       `hcl:"family,optional"`
	DisplayName   string       `hcl:"display_name,optional"`
	Documentation string       `hcl:"documentation,optional"`
	Options       []*hclOption `hcl:"option,block"`
}

type hclOption struct {
	Name          string         `hcl:"name,label"`
	DisplayName   string         `hcl:"display_name,optional"`
	Documentation string         `hcl:"documentation,optional"`
	Default       hcl.Expression `hcl:"default,optional"`
	Type          string         `hcl:"type,optional"`
	ValueType     string         `hcl:"value_type,optional"`
	ActiveIf      []*hclActiveIf `hcl:"active_if,block"`
	Options       []*hclOption   `hcl:"option,block"`
	Element       *hclElement    `hcl:"element,block"`
}

// hclElement describes the element template of an array option.
type hclElement struct {
	DisplayName   string         `hcl:"display_name,optional"`
	Documentation string         `hcl:"documentation,optional"`
	Default       hcl.Expression `hcl:"default,optional"`
	Type          string         `hcl:"type,optional"`
	ValueType     string         `hcl:"value_type,optional"`
	Options       []*hclOption   `hcl:"option,block"`
}

type hclActiveIf struct {
	Target string   `hcl:"target"`
	Values []string `hcl:"values,optional"`
	Empty  bool     `hcl:"empty,optional"`
	Negate bool     `hcl:"negate,optional"`
}

// ParseHCL decodes the component descriptors in an HCL file.
func ParseHCL(data []byte, filename string) ([]*ComponentDescriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, inputError(diags, filename, "failed to parse component descriptor")
	}

	var decoded hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, inputError(diags, filename, "failed to decode component descriptor")
	}

	components := make([]*ComponentDescriptor, 0, len(decoded.Components))
	for _, hc := range decoded.Components {
		c := &ComponentDescriptor{
			Name:        hc.Name,
			Family:      hc.Family,
			DisplayName: hc.DisplayName,
			Description: hc.Documentation,
			Source:      filename,
		}
		for _, opt := range hc.Options {
			node, err := buildHCLOption(opt, "")
			if err != nil {
				return nil, errors.WithComponent(err, hc.Name, filename)
			}
			c.Roots = append(c.Roots, node)
		}
		components = append(components, c)
	}

	return components, nil
}

func inputError(diags hcl.Diagnostics, filename, msg string) error {
	return errors.WithSource(errors.Wrap(diags, errors.KindInput, msg), filename)
}

func buildHCLOption(opt *hclOption, parentPath string) (*Node, error) {
	path := ChildPath(parentPath, opt.Name)

	def, defType, err := evalDefault(opt.Default)
	if err != nil {
		return nil, errors.WithPath(errors.Wrapf(err, errors.KindInput, "invalid default for %s", path), path)
	}

	node := &Node{
		Name:        opt.Name,
		Path:        path,
		DisplayName: opt.DisplayName,
		Description: opt.Documentation,
		Default:     def,
		Type:        opt.Type,
		ValueType:   opt.ValueType,
	}

	for _, ai := range opt.ActiveIf {
		p := Predicate{Target: ai.Target, Values: ai.Values, Negate: ai.Negate}
		if ai.Empty {
			p.Kind = PredicateEmpty
		}
		node.Condition.Predicates = append(node.Condition.Predicates, p)
	}

	switch {
	case opt.Element != nil && len(opt.Options) > 0:
		return nil, errors.WithPath(errors.Errorf(errors.KindInput, "option %s declares both an element and nested options", path), path)

	case opt.Element != nil:
		element, err := buildHCLElement(opt.Name, opt.Element, path)
		if err != nil {
			return nil, err
		}
		node.Shape = Array{Element: element}
		if node.ValueType == "" {
			node.ValueType = "array"
		}

	case len(opt.Options) > 0:
		obj := Object{}
		for _, child := range opt.Options {
			childNode, err := buildHCLOption(child, path)
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, childNode)
		}
		node.Shape = obj
		if node.ValueType == "" {
			node.ValueType = "object"
		}

	default:
		node.Shape = Scalar{}
		if node.ValueType == "" {
			node.ValueType = defType
		}
	}

	return node, nil
}

func buildHCLElement(arrayName string, el *hclElement, arrayPath string) (*Node, error) {
	path := ElementPath(arrayPath)

	def, defType, err := evalDefault(el.Default)
	if err != nil {
		return nil, errors.WithPath(errors.Wrapf(err, errors.KindInput, "invalid default for %s", path), path)
	}

	node := &Node{
		Name:        arrayName + IndexPlaceholder,
		Path:        path,
		DisplayName: el.DisplayName,
		Description: el.Documentation,
		Default:     def,
		Type:        el.Type,
		ValueType:   el.ValueType,
	}

	if len(el.Options) == 0 {
		node.Shape = Scalar{}
		if node.ValueType == "" {
			node.ValueType = defType
		}
		return node, nil
	}

	obj := Object{}
	for _, child := range el.Options {
		childNode, err := buildHCLOption(child, path)
		if err != nil {
			return nil, err
		}
		obj.Children = append(obj.Children, childNode)
	}
	node.Shape = obj
	if node.ValueType == "" {
		node.ValueType = "object"
	}
	return node, nil
}

// evalDefault evaluates a default expression without variables. A missing
// attribute evaluates to null and yields no default.
func evalDefault(expr hcl.Expression) (*string, string, error) {
	if expr == nil {
		return nil, "", nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, "", diags
	}
	if val.IsNull() {
		return nil, "", nil
	}

	text, err := FormatValue(val)
	if err != nil {
		return nil, "", err
	}
	return &text, valueTypeOf(val.Type()), nil
}

// FormatValue renders a cty value the way it appears in documentation:
// strings verbatim, numbers in shortest decimal form, bools as true/false,
// and anything else as JSON.
func FormatValue(val cty.Value) (string, error) {
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return "", nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		if val.True() {
			return "true", nil
		}
		return "false", nil
	}

	data, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func valueTypeOf(t cty.Type) string {
	switch {
	case t == cty.String:
		return "string"
	case t == cty.Number:
		return "number"
	case t == cty.Bool:
		return "boolean"
	case t.IsListType() || t.IsTupleType() || t.IsSetType():
		return "array"
	case t.IsObjectType() || t.IsMapType():
		return "object"
	default:
		return ""
	}
}
