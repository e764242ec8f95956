// pkg/registry/schema.go
package registry

// IndicatorRegistry is the exported form of the readiness indicator taxonomy.
type IndicatorRegistry struct {
	Version         string  `json:"version"`
	ComposerVersion string  `json:"composerVersion,omitempty"`
	LastUpdated     string  `json:"lastUpdated"`
	Groups          []Group `json:"groups"`
}

type Group struct {
	Key        string      `json:"key"`
	Heading    string      `json:"heading"`
	Indicators []Indicator `json:"indicators"`
}

type Indicator struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
