package fixes

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFile is returned for override files that are not shaped like
//
//	replace: false          # optional, start from empty tables
//	labels:
//	  timelinesst: timeliness
//	broader:
//	  DSD: DATA_SET
//	  DATAFLOW: ""          # keep skos:related
var ErrInvalidFile = errors.New("invalid fix table file")

// LoadFile applies the override file at path on top of base.
func LoadFile(base Tables, path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading fix table %s: %w", path, err)
	}

	tables, err := Apply(base, data)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// Apply merges a YAML override document into base. Label fixes replace
// existing keys. Broader overrides keep the document order: a concept that
// already has an entry is updated in place, new concepts are appended.
func Apply(base Tables, data []byte) (Tables, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return base, fmt.Errorf("parsing YAML: %w", err)
	}

	// An empty file decodes to a zero node.
	if document.Kind == 0 || len(document.Content) == 0 {
		return base, nil
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return base, fmt.Errorf("%w: top level must be a mapping (line %d)", ErrInvalidFile, root.Line)
	}

	result := base
	var labelNode, broaderNode *yaml.Node

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "replace":
			var replace bool
			if err := value.Decode(&replace); err != nil {
				return base, fmt.Errorf("%w: replace: %v", ErrInvalidFile, err)
			}
			if replace {
				result = Tables{}
			}
		case "labels":
			labelNode = value
		case "broader":
			broaderNode = value
		default:
			return base, fmt.Errorf("%w: unknown key %q (line %d)", ErrInvalidFile, key.Value, key.Line)
		}
	}

	if labelNode != nil {
		err := eachPair(labelNode, func(from, to string) {
			result.Labels = result.Labels.with(from, to)
		})
		if err != nil {
			return base, fmt.Errorf("labels: %w", err)
		}
	}

	if broaderNode != nil {
		err := eachPair(broaderNode, func(conceptID, parentID string) {
			result.Broader = result.Broader.with(BroaderOverride{ConceptID: conceptID, ParentID: parentID})
		})
		if err != nil {
			return base, fmt.Errorf("broader: %w", err)
		}
	}

	return result, nil
}

// eachPair walks a mapping node in document order. Null values are passed
// as empty strings.
func eachPair(node *yaml.Node, fn func(key, value string)) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping (line %d)", ErrInvalidFile, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: entries must be scalar pairs (line %d)", ErrInvalidFile, key.Line)
		}
		if key.Value == "" {
			return fmt.Errorf("%w: empty key (line %d)", ErrInvalidFile, key.Line)
		}
		parsed := value.Value
		if value.Tag == "!!null" {
			parsed = ""
		}
		fn(key.Value, parsed)
	}
	return nil
}

// MarshalYAML renders tables in the override file format, preserving order.
func (tables Tables) MarshalYAML() (interface{}, error) {
	labels := &yaml.Node{Kind: yaml.MappingNode}
	for _, fix := range tables.Labels.Fixes() {
		labels.Content = append(labels.Content, scalar(fix.From), scalar(fix.To))
	}

	broader := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range tables.Broader.Entries() {
		broader.Content = append(broader.Content, scalar(entry.ConceptID), scalar(entry.ParentID))
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("labels"), labels,
			scalar("broader"), broader,
		},
	}, nil
}

func scalar(value string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if value == "" {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node
}
