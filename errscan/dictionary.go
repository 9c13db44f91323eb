package errscan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dictionary maps error kinds to HTTP status codes.
type Dictionary map[string]int

// dictionaryEntry accepts both `Kind: 404` and `Kind: {status: 404}`.
type dictionaryEntry struct {
	Status int `yaml:"status"`
}

func (e *dictionaryEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&e.Status)
	case yaml.MappingNode:
		type plain dictionaryEntry
		return node.Decode((*plain)(e))
	default:
		return fmt.Errorf("line %d: unsupported dictionary entry", node.Line)
	}
}

// ParseDictionary decodes a YAML or JSON dictionary.
func ParseDictionary(data []byte) (Dictionary, error) {
	var entries map[string]dictionaryEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("errscan: dictionary: %w", err)
	}

	dict := make(Dictionary, len(entries))
	for kind, e := range entries {
		if e.Status < 100 || e.Status > 599 {
			return nil, fmt.Errorf("errscan: dictionary: %s: status %d out of range", kind, e.Status)
		}
		dict[kind] = e.Status
	}

	return dict, nil
}

// LoadDictionary reads a dictionary file.
func LoadDictionary(name string) (Dictionary, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("errscan: dictionary: %w", err)
	}

	return ParseDictionary(data)
}
