package gosrc

// MyComponent is super my component
//
// @component: my
// @family: test
type MyComponent struct {
	Configuration MyConfiguration `option:"configuration"`
	internal      string
}

type MyConfiguration struct {
	Input  string       `option:"input"` // the input value
	Nested NestedConfig `option:"nested"`
}

// @type: dataset
type NestedConfig struct {
	Datastore *Datastore `option:"datastore"`
}

// @type: datastore
type Datastore struct {
	// @default: unknown
	User string `option:"user"`
}
