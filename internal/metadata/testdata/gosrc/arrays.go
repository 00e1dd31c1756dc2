package gosrc

// @component: arrays
// @family: aggregate
type Arrays struct {
	// grouping fields
	// @default: 1
	GroupBy []string `option:"groupBy"`

	Operations []Operation `option:"operations"`

	// @activeIf: strict == true
	Retries int `option:"retries"`
}

type Operation struct {
	FieldPath string `option:"fieldPath"`
	// @default: SUM
	Operation       string `option:"operation"`
	OutputFieldPath string `option:"outputFieldPath"`
}
