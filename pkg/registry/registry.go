// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func LoadRegistry(path string) (*IndicatorRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg IndicatorRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// SaveRegistry writes reg as indented JSON, creating parent directories.
func SaveRegistry(reg *IndicatorRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Validate checks required fields and key uniqueness.
func (r *IndicatorRegistry) Validate() error {
	if r.Version == "" {
		return fmt.Errorf("registry missing required field: version")
	}
	if len(r.Groups) == 0 {
		return fmt.Errorf("registry contains no groups")
	}

	groups := make(map[string]bool)
	for _, g := range r.Groups {
		if g.Key == "" {
			return fmt.Errorf("group missing required field: key")
		}
		if groups[g.Key] {
			return fmt.Errorf("duplicate group key: %s", g.Key)
		}
		groups[g.Key] = true

		if len(g.Indicators) == 0 {
			return fmt.Errorf("group %s contains no indicators", g.Key)
		}
		keys := make(map[string]bool)
		for _, ind := range g.Indicators {
			if ind.Key == "" {
				return fmt.Errorf("group %s has an indicator without key", g.Key)
			}
			if keys[ind.Key] {
				return fmt.Errorf("duplicate indicator key: %s.%s", g.Key, ind.Key)
			}
			keys[ind.Key] = true
			if ind.Label == "" {
				return fmt.Errorf("indicator %s.%s missing required field: label", g.Key, ind.Key)
			}
		}
	}
	return nil
}

// IndicatorCount is the total number of indicators across groups.
func (r *IndicatorRegistry) IndicatorCount() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Indicators)
	}
	return n
}

// Diff lists human-readable differences from want to got. Order of groups and
// indicators is significant. An empty result means the registries match.
func Diff(want, got *IndicatorRegistry) []string {
	var diffs []string
	if want.Version != got.Version {
		diffs = append(diffs, fmt.Sprintf("version: %q != %q", got.Version, want.Version))
	}

	gotGroups := make(map[string]int, len(got.Groups))
	for i, g := range got.Groups {
		gotGroups[g.Key] = i
	}
	wantGroups := make(map[string]bool, len(want.Groups))

	for i, wg := range want.Groups {
		wantGroups[wg.Key] = true
		gi, ok := gotGroups[wg.Key]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("group %s: missing", wg.Key))
			continue
		}
		if gi != i {
			diffs = append(diffs, fmt.Sprintf("group %s: position %d, expected %d", wg.Key, gi, i))
		}
		gg := got.Groups[gi]
		if gg.Heading != wg.Heading {
			diffs = append(diffs, fmt.Sprintf("group %s: heading %q, expected %q", wg.Key, gg.Heading, wg.Heading))
		}
		diffs = append(diffs, diffIndicators(wg, gg)...)
	}

	for _, g := range got.Groups {
		if !wantGroups[g.Key] {
			diffs = append(diffs, fmt.Sprintf("group %s: unexpected", g.Key))
		}
	}
	return diffs
}

func diffIndicators(want, got Group) []string {
	var diffs []string
	gotIdx := make(map[string]int, len(got.Indicators))
	for i, ind := range got.Indicators {
		gotIdx[ind.Key] = i
	}
	wantKeys := make(map[string]bool, len(want.Indicators))

	for i, wi := range want.Indicators {
		wantKeys[wi.Key] = true
		path := want.Key + "." + wi.Key
		gi, ok := gotIdx[wi.Key]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("indicator %s: missing", path))
			continue
		}
		if gi != i {
			diffs = append(diffs, fmt.Sprintf("indicator %s: position %d, expected %d", path, gi, i))
		}
		if label := got.Indicators[gi].Label; label != wi.Label {
			diffs = append(diffs, fmt.Sprintf("indicator %s: label %q, expected %q", path, label, wi.Label))
		}
	}
	for _, ind := range got.Indicators {
		if !wantKeys[ind.Key] {
			diffs = append(diffs, fmt.Sprintf("indicator %s.%s: unexpected", want.Key, ind.Key))
		}
	}
	return diffs
}
