// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Marshal renders the configuration as HCL. Empty values are omitted.
func Marshal(c *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	setString := func(name, value string) {
		if value != "" {
			body.SetAttributeValue(name, cty.StringVal(value))
		}
	}
	setList := func(name string, values []string) {
		if len(values) == 0 {
			return
		}
		vals := make([]cty.Value, len(values))
		for i, v := range values {
			vals[i] = cty.StringVal(v)
		}
		body.SetAttributeValue(name, cty.ListVal(vals))
	}

	setString("output", c.Output)
	setString("title", c.Title)
	if c.Level != 0 {
		body.SetAttributeValue("level", cty.NumberIntVal(int64(c.Level)))
	}
	setString("locale", c.Locale)
	setString("version", c.Version)
	setString("work_dir", c.WorkDir)
	setList("sources", c.Sources)
	setList("include", c.Include)
	setString("metrics_file", c.MetricsFile)

	for _, format := range c.Formats {
		body.AppendNewline()
		block := body.AppendNewBlock("format", []string{format.Name})
		block.Body().SetAttributeValue("path", cty.StringVal(format.Path))
	}

	if c.Log != nil && (c.Log.Level != "" || c.Log.JSON) {
		body.AppendNewline()
		logBody := body.AppendNewBlock("log", nil).Body()
		if c.Log.Level != "" {
			logBody.SetAttributeValue("level", cty.StringVal(c.Log.Level))
		}
		if c.Log.JSON {
			logBody.SetAttributeValue("json", cty.True)
		}
	}

	return hclwrite.Format(f.Bytes())
}

// Example returns a starter configuration for a new project.
func Example() *Config {
	return &Config{
		Output:  "docs/components.adoc",
		Title:   "Components",
		Level:   2,
		Sources: []string{"components"},
		Formats: []*FormatConfig{
			{Name: "html", Path: "docs/components.html"},
			{Name: "pdf", Path: "docs/components.pdf"},
		},
		Log: &LogConfig{Level: "info"},
	}
}
