// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ToYAMLNode converts a schema built with anchors to a yaml.Node tree.
// Definitions referenced more than once are written under "$defs" with an
// anchor and aliased at every use; the others are inlined.
func ToYAMLNode(js *ConfigSchema) *yaml.Node {
	isDef := make(map[*ConfigSchema]string, len(js.Definitions))
	for name, def := range js.Definitions {
		isDef[def] = name
	}

	// Count references to definitions
	counts := make(map[*ConfigSchema]int)
	var counter func(*ConfigSchema)
	counter = func(s *ConfigSchema) {
		if s == nil {
			return
		}
		if _, ok := isDef[s]; ok {
			counts[s]++
			if counts[s] > 1 {
				return
			}
		}
		for _, v := range s.Properties {
			counter(v)
		}
		counter(s.Items)
	}
	for _, p := range js.Properties {
		counter(p)
	}

	var sharedNames []string
	sharedNodes := make(map[*ConfigSchema]*yaml.Node)
	for _, name := range definitionNames(js) {
		def := js.Definitions[name]
		if counts[def] > 1 {
			sharedNames = append(sharedNames, name)
			sharedNodes[def] = &yaml.Node{Kind: yaml.MappingNode, Anchor: name}
		}
	}

	var convert func(*ConfigSchema) *yaml.Node
	convert = func(s *ConfigSchema) *yaml.Node {
		if s == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		if shared, ok := sharedNodes[s]; ok {
			return &yaml.Node{Kind: yaml.AliasNode, Value: shared.Anchor, Alias: shared}
		}
		node := &yaml.Node{Kind: yaml.MappingNode}
		fillNode(node, s, convert)
		return node
	}

	for _, name := range sharedNames {
		def := js.Definitions[name]
		fillNode(sharedNodes[def], def, convert)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	if js.Schema != "" {
		root.Content = append(root.Content, scalar("$schema"), scalar(js.Schema))
	}
	if js.ID != "" {
		root.Content = append(root.Content, scalar("$id"), scalar(js.ID))
	}
	if js.Title != "" {
		root.Content = append(root.Content, scalar("title"), scalar(js.Title))
	}
	if js.Type != "" {
		root.Content = append(root.Content, scalar("type"), scalar(js.Type))
	}

	// Anchors must precede their aliases
	if len(sharedNames) > 0 {
		defsNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range sharedNames {
			defsNode.Content = append(defsNode.Content, scalar(name), sharedNodes[js.Definitions[name]])
		}
		root.Content = append(root.Content, scalar("$defs"), defsNode)
	}

	if len(js.Properties) > 0 {
		root.Content = append(root.Content, scalar("properties"), mapToNode(js.Properties, convert))
	}

	return root
}

// fillNode populates a node's content from the schema.
func fillNode(node *yaml.Node, js *ConfigSchema, convert func(*ConfigSchema) *yaml.Node) {
	var content []*yaml.Node

	if js.Title != "" {
		content = append(content, scalar("title"), scalar(js.Title))
	}
	if js.Description != "" {
		content = append(content, scalar("description"), scalar(js.Description))
	}
	if js.Type != "" {
		content = append(content, scalar("type"), scalar(js.Type))
	}
	if js.Ref != "" {
		content = append(content, scalar("$ref"), scalar(js.Ref))
	}
	if js.ConfigType != "" {
		content = append(content, scalar("x-configuration-type"), scalar(js.ConfigType))
	}
	if js.EnabledIf != "" {
		content = append(content, scalar("x-enabled-if"), scalar(js.EnabledIf))
	}
	if js.Default != nil {
		content = append(content, scalar("default"), anyToNode(js.Default))
	}
	if len(js.Properties) > 0 {
		content = append(content, scalar("properties"), mapToNode(js.Properties, convert))
	}
	if js.Items != nil {
		content = append(content, scalar("items"), convert(js.Items))
	}

	node.Content = content
}

// mapToNode converts a properties map to a MappingNode with sorted keys.
func mapToNode(m map[string]*ConfigSchema, convert func(*ConfigSchema) *yaml.Node) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		node.Content = append(node.Content, scalar(k), convert(m[k]))
	}
	return node
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func anyToNode(v any) *yaml.Node {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return scalar(fmt.Sprintf("%v", v))
	}
	return node
}

// SchemaToYAML renders an anchored schema as a YAML document.
func SchemaToYAML(js *ConfigSchema) (string, error) {
	data, err := yaml.Marshal(ToYAMLNode(js))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
