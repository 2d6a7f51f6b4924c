package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// areasFile is the AREAS_FILE layout:
//
//	areas:
//	  - Kitchen
//	  - name: Garage
type areasFile struct {
	Areas []areaEntry `yaml:"areas"`
}

type areaEntry struct {
	Name string
}

// UnmarshalYAML accepts either a bare name or a mapping with a name key
func (a *areaEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Name = node.Value
		return nil
	}

	var obj struct {
		Name string `yaml:"name"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}
	a.Name = obj.Name
	return nil
}

// LoadAreasFile reads host area names from a YAML file. Blank and duplicate
// names are dropped; order is preserved.
func LoadAreasFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read areas file %s: %w", path, err)
	}

	var parsed areasFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse areas file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(parsed.Areas))
	names := make([]string, 0, len(parsed.Areas))
	for _, entry := range parsed.Areas {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}
