// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/remap/expression"
	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/remap"
	"github.com/stacklok/remap/value"
)

// node builds the expression for a single-key node mapping.
func (d *Decoder) node(n *yaml.Node) (remap.Expression, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, errorAt(n, errors.New("expected a single-key node mapping"))
	}
	key, body := n.Content[0], resolve(n.Content[1])

	switch key.Value {
	case "literal":
		v, err := literal(body)
		if err != nil {
			return nil, errorAt(body, err)
		}
		return expression.NewLiteral(v), nil
	case "noop":
		return expression.Noop{}, nil
	case "path":
		p, err := parsePath(body)
		if err != nil {
			return nil, err
		}
		return expression.NewPath(p), nil
	case "variable":
		return expression.NewVariable(body.Value), nil
	case "not":
		inner, err := d.node(body)
		if err != nil {
			return nil, err
		}
		return expression.NewNot(inner), nil
	case "block":
		exprs, err := d.nodes(body)
		if err != nil {
			return nil, err
		}
		return expression.NewBlock(exprs...), nil
	case "assign":
		return d.assign(body)
	case "if":
		return d.ifNode(body)
	case "op":
		return d.op(body)
	case "call":
		return d.call(body)
	default:
		return nil, errorAt(key, fmt.Errorf("unknown node %q", key.Value))
	}
}

func (d *Decoder) nodes(seq *yaml.Node) ([]remap.Expression, error) {
	exprs := make([]remap.Expression, 0, len(seq.Content))
	for _, n := range seq.Content {
		expr, err := d.node(n)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func parsePath(n *yaml.Node) (path.Path, error) {
	p, err := path.Parse(n.Value)
	if err != nil {
		return path.Path{}, errorAt(n, err)
	}
	return p, nil
}

func (d *Decoder) assign(n *yaml.Node) (remap.Expression, error) {
	fields := mapping(n)
	val, err := d.node(fields["value"])
	if err != nil {
		return nil, err
	}
	if target, ok := fields["path"]; ok {
		p, err := parsePath(target)
		if err != nil {
			return nil, err
		}
		return expression.NewPathAssignment(p, val), nil
	}
	target, ok := fields["variable"]
	if !ok {
		return nil, errorAt(n, errors.New("assignment needs a path or variable target"))
	}
	return expression.NewVariableAssignment(target.Value, val), nil
}

func (d *Decoder) ifNode(n *yaml.Node) (remap.Expression, error) {
	fields := mapping(n)
	cond, err := d.node(fields["condition"])
	if err != nil {
		return nil, err
	}
	then, err := d.node(fields["then"])
	if err != nil {
		return nil, err
	}
	var otherwise remap.Expression
	if e, ok := fields["else"]; ok {
		if otherwise, err = d.node(e); err != nil {
			return nil, err
		}
	}
	return expression.NewIf(cond, then, otherwise), nil
}

func (d *Decoder) op(n *yaml.Node) (remap.Expression, error) {
	fields := mapping(n)
	operator := fields["operator"]
	op, err := expression.ParseOperator(operator.Value)
	if err != nil {
		return nil, errorAt(operator, err)
	}
	lhs, err := d.node(fields["lhs"])
	if err != nil {
		return nil, err
	}
	rhs, err := d.node(fields["rhs"])
	if err != nil {
		return nil, err
	}
	return expression.NewArithmetic(op, lhs, rhs), nil
}

func (d *Decoder) call(n *yaml.Node) (remap.Expression, error) {
	fields := mapping(n)
	function := fields["function"]

	var args []remap.Argument
	if list, ok := fields["args"]; ok {
		args = make([]remap.Argument, 0, len(list.Content))
		for _, item := range list.Content {
			argFields := mapping(item)
			expr, err := d.node(argFields["value"])
			if err != nil {
				return nil, err
			}
			arg := remap.Argument{Expr: expr}
			if kw, ok := argFields["keyword"]; ok {
				arg.Keyword = kw.Value
			}
			args = append(args, arg)
		}
	}

	expr, err := d.registry.Call(function.Value, args...)
	if err != nil {
		return nil, errorAt(n, err)
	}
	return expr, nil
}

// literal converts a YAML value node into a Value, preserving the YAML
// scalar type.
func literal(n *yaml.Node) (value.Value, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := literal(c)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.Array(items), nil
	case yaml.MappingNode:
		fields := make(map[string]value.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := literal(n.Content[i+1])
			if err != nil {
				return value.Value{}, err
			}
			fields[n.Content[i].Value] = v
		}
		return value.Map(fields), nil
	case yaml.ScalarNode:
		return scalar(n)
	default:
		return value.Value{}, errors.New("unsupported literal node")
	}
}

func scalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Boolean(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return value.Value{}, err
		}
		return value.Integer(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return value.Value{}, err
		}
		return value.Timestamp(t), nil
	case "!!binary":
		var s string
		if err := n.Decode(&s); err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	default:
		return value.String(n.Value), nil
	}
}
