package suite

import (
	"bytes"
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// decodeSuiteFile parses a suite file, which may be JSON or YAML. Anything that looks like a JSON
// object and parses as one is treated as JSON; everything else goes through the YAML decoder.
func decodeSuiteFile(data []byte, target interface{}) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, target); err == nil {
			return nil
		}
	}
	return yaml.Unmarshal(data, target)
}

// scalarString accepts any scalar, so that a suite can say `expect: 120` rather than
// `expect: "120"`. Non-string values keep the spelling they have in the file, and null is empty.
type scalarString string

func (s *scalarString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return nil
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = scalarString(str)
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a string but got %s", data)
	case string(data) == "null":
		*s = ""
	default:
		*s = scalarString(data)
	}
	return nil
}

func (s *scalarString) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string but got a %s", node.Line, yamlKindName(node.Kind))
	}
	if node.ShortTag() == "!!null" {
		*s = ""
		return nil
	}
	*s = scalarString(node.Value)
	return nil
}

func yamlKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.MappingNode:
		return "map"
	case yaml.SequenceNode:
		return "list"
	default:
		return "document"
	}
}
