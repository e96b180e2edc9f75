package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Errorf("unsupported layout file extension %q", filepath.Ext(path))
}

// Document is a layout description with its default variables.
type Document struct {
	Vars   map[string]any `yaml:"vars,omitempty" toml:"vars"`
	Layout []Node         `yaml:"layout" toml:"layout"`
}

// Node declares a view, or a group when View is empty.
type Node struct {
	View string `yaml:"view,omitempty" toml:"view"`
	// Stack creates the view as a stack that arranges its subviews.
	Stack bool `yaml:"stack,omitempty" toml:"stack"`
	// NotArranged keeps the children of a group out of the stack's
	// arranged list. Only meaningful without View.
	NotArranged bool `yaml:"notArranged,omitempty" toml:"notArranged"`

	When string `yaml:"when,omitempty" toml:"when"`
	Each string `yaml:"each,omitempty" toml:"each"`

	Background string `yaml:"background,omitempty" toml:"background"`
	Text       string `yaml:"text,omitempty" toml:"text"`
	Hidden     *bool  `yaml:"hidden,omitempty" toml:"hidden"`

	Anchors  []Anchor `yaml:"anchors,omitempty" toml:"anchors"`
	Children []Node   `yaml:"children,omitempty" toml:"children"`
}

// Anchor declares constraints for one or more attributes of a node's view.
//
// Without To the target is the superview. With Value the attributes are
// fixed to a constant and To, ToAttr and Constant are ignored.
type Anchor struct {
	Attrs      []string `yaml:"attrs" toml:"attrs"`
	Relation   string   `yaml:"relation,omitempty" toml:"relation"`
	To         string   `yaml:"to,omitempty" toml:"to"`
	ToAttr     string   `yaml:"toAttr,omitempty" toml:"toAttr"`
	Value      *float64 `yaml:"value,omitempty" toml:"value"`
	Constant   float64  `yaml:"constant,omitempty" toml:"constant"`
	Multiplier *float64 `yaml:"multiplier,omitempty" toml:"multiplier"`
	Priority   *float64 `yaml:"priority,omitempty" toml:"priority"`
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read layout file")
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return doc, nil
}

// Parse decodes data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.Errorf("unknown TOML keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
	return &doc, nil
}

// ParseVar splits a "name=value" assignment. The value is read as a YAML
// scalar or flow sequence, so "true", "3" and "[a, b]" keep their types.
func ParseVar(assignment string) (string, any, error) {
	name, raw, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, errors.Errorf("invalid variable %q, want name=value", assignment)
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return "", nil, errors.Wrapf(err, "invalid value for %s", name)
	}
	if value == nil {
		value = raw
	}
	return name, value, nil
}

// ParseVars applies ParseVar to every assignment.
func ParseVars(assignments []string) (map[string]any, error) {
	vars := make(map[string]any, len(assignments))
	for _, a := range assignments {
		name, value, err := ParseVar(a)
		if err != nil {
			return nil, err
		}
		vars[name] = value
	}
	return vars, nil
}
