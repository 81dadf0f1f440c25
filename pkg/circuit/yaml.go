package circuit

import (
	"strings"

	"gopkg.in/yaml.v3"

	"qalc-hq/qalc/pkg/qalc/ast"
)

// document mirrors the YAML layout of a circuit file.
type document struct {
	Name   string      `yaml:"name"`
	Qubits int         `yaml:"qubits"`
	Input  *int        `yaml:"input"`
	Gates  []gateEntry `yaml:"gates"`

	qubitsPos position
	inputPos  position
}

type gateEntry struct {
	Type    string   `yaml:"type"`
	Indices []int    `yaml:"indices"`
	Map     []string `yaml:"map"`

	pos position
}

type position struct {
	line   int
	column int
}

// UnmarshalYAML records where the gate was declared.
func (g *gateEntry) UnmarshalYAML(node *yaml.Node) error {
	type plain gateEntry
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*g = gateEntry(p)
	g.pos = position{line: node.Line, column: node.Column}
	return nil
}

func parseYAML(data []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	doc := &document{}
	if len(root.Content) == 0 {
		return doc, nil
	}
	body := root.Content[0]
	if err := body.Decode(doc); err != nil {
		return nil, err
	}
	doc.qubitsPos = valuePosition(body, "qubits")
	doc.inputPos = valuePosition(body, "input")
	return doc, nil
}

// valuePosition returns the position of the value bound to key in a mapping
// node, or the mapping itself when the key is absent.
func valuePosition(mapping *yaml.Node, key string) position {
	if mapping.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			if mapping.Content[i].Value == key {
				v := mapping.Content[i+1]
				return position{line: v.Line, column: v.Column}
			}
		}
	}
	return position{line: mapping.Line, column: mapping.Column}
}

// sourceLines gives YAML positions the line text diagnostics render.
type sourceLines []string

func newSourceLines(data []byte) sourceLines {
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
}

func (s sourceLines) location(pos position, token string) ast.Location {
	if pos.line < 1 || pos.line > len(s) {
		return ast.Location{Token: token}
	}
	return ast.Location{
		Token:    token,
		LineText: s[pos.line-1],
		Line:     pos.line,
		Column:   max(pos.column-1, 0),
	}
}
