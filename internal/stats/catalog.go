package stats

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Stat describes one named statistic. The catalog ships as data so the
// query list stays auditable without reading any Go code.
type Stat struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Format      string `yaml:"format"`
	Default     bool   `yaml:"default"`
	// Kind selects how the raw scalar is rendered. Empty means verbatim;
	// "duration" treats it as a UTC timestamp and shows the elapsed time.
	Kind  string `yaml:"kind"`
	Query string `yaml:"query"`
}

type catalogFile struct {
	Stats []Stat `yaml:"stats"`
}

// LoadCatalog parses the embedded statistic catalog.
func LoadCatalog() ([]Stat, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse stat catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Stats))
	for _, stat := range file.Stats {
		if stat.ID == "" || stat.Query == "" {
			return nil, fmt.Errorf("stat %q is missing an id or query", stat.Label)
		}
		if seen[stat.ID] {
			return nil, fmt.Errorf("duplicate stat id %q", stat.ID)
		}
		seen[stat.ID] = true
	}
	return file.Stats, nil
}
