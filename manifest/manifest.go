// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/remap/internal/schema"
	"github.com/stacklok/remap/remap"
)

//go:embed data/manifest.schema.json
var manifestSchema []byte

// ErrEmptyManifest is returned when the document has no content.
var ErrEmptyManifest = errors.New("empty manifest")

// Error reports a failure to build the node at Line and Column.
type Error struct {
	Line   int
	Column int
	err    error
}

func errorAt(n *yaml.Node, err error) *Error {
	return &Error{Line: n.Line, Column: n.Column, err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("manifest line %d column %d: %s", e.Line, e.Column, e.err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Manifest is a decoded program manifest.
type Manifest struct {
	// Name is the optional program name.
	Name string
	// Expressions are the top-level program expressions in order.
	Expressions []remap.Expression
}

// Compile compiles the manifest expressions into a program.
func (m *Manifest) Compile(opts ...remap.CompileOption) (*remap.Program, error) {
	return remap.Compile(m.Expressions, opts...)
}

// Validate checks data against the manifest schema without decoding it.
func Validate(data []byte) error {
	_, err := parse(data)
	return err
}

// parse reads and schema-validates the document, returning its root
// mapping node.
func parse(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyManifest
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyManifest
	}

	var raw any
	if err := doc.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := schema.ValidateValue(manifestSchema, raw, "manifest schema validation failed"); err != nil {
		return nil, err
	}
	return resolve(doc.Content[0]), nil
}

// Decoder builds expressions from manifests, compiling function calls
// against a registry.
type Decoder struct {
	registry *remap.Registry
}

// NewDecoder creates a decoder resolving calls through registry.
func NewDecoder(registry *remap.Registry) *Decoder {
	return &Decoder{registry: registry}
}

// Decode validates and decodes a manifest document.
func (d *Decoder) Decode(data []byte) (*Manifest, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}

	fields := mapping(root)
	m := &Manifest{}
	if n, ok := fields["name"]; ok {
		m.Name = n.Value
	}
	program := fields["program"]
	m.Expressions = make([]remap.Expression, 0, len(program.Content))
	for _, n := range program.Content {
		expr, err := d.node(n)
		if err != nil {
			return nil, err
		}
		m.Expressions = append(m.Expressions, expr)
	}
	return m, nil
}

// resolve follows YAML aliases to the node they refer to.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// mapping returns the keys of a mapping node. Values are alias-resolved.
func mapping(n *yaml.Node) map[string]*yaml.Node {
	n = resolve(n)
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = resolve(n.Content[i+1])
	}
	return fields
}
