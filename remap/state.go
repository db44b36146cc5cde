// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package remap

import (
	"maps"

	"github.com/stacklok/remap/path"
	"github.com/stacklok/remap/value"
)

// CompilerState accumulates type facts across a program during
// compilation. Assignments record the type of what they write so later
// reads of the same path or variable can be typed precisely; deletions
// and branches forget what may no longer hold. Execution never reads or
// writes it.
type CompilerState struct {
	paths     map[string]pathType
	variables map[string]TypeDef
}

type pathType struct {
	path    path.Path
	typeDef TypeDef
}

// NewCompilerState returns an empty compiler state.
func NewCompilerState() *CompilerState {
	return &CompilerState{
		paths:     make(map[string]pathType),
		variables: make(map[string]TypeDef),
	}
}

// Clone returns an independent copy of s.
func (s *CompilerState) Clone() *CompilerState {
	return &CompilerState{
		paths:     maps.Clone(s.paths),
		variables: maps.Clone(s.variables),
	}
}

// SetPathType records the type of the value last assigned to p. Types
// recorded for paths above or below p no longer hold and are forgotten.
func (s *CompilerState) SetPathType(p path.Path, td TypeDef) {
	s.ForgetPath(p)
	s.paths[p.String()] = pathType{path: p, typeDef: td}
}

// ForgetPath drops the types recorded for p, for the paths below it and
// for the containers above it.
func (s *CompilerState) ForgetPath(p path.Path) {
	for key, entry := range s.paths {
		if entry.path.StartsWith(p) || p.StartsWith(entry.path) {
			delete(s.paths, key)
		}
	}
}

// RetainPaths drops every recorded path type for which keep returns false.
func (s *CompilerState) RetainPaths(keep func(path.Path) bool) {
	for key, entry := range s.paths {
		if !keep(entry.path) {
			delete(s.paths, key)
		}
	}
}

// PathType returns the recorded type of p, if any.
func (s *CompilerState) PathType(p path.Path) (TypeDef, bool) {
	entry, ok := s.paths[p.String()]
	return entry.typeDef, ok
}

// SetVariableType records the type of the value last assigned to name.
func (s *CompilerState) SetVariableType(name string, td TypeDef) {
	s.variables[name] = td
}

// VariableType returns the recorded type of variable name, if any.
func (s *CompilerState) VariableType(name string) (TypeDef, bool) {
	td, ok := s.variables[name]
	return td, ok
}

// ForgetVariable drops the type recorded for variable name.
func (s *CompilerState) ForgetVariable(name string) {
	delete(s.variables, name)
}

// Join narrows s to the facts that hold on either of two control flow
// paths, s being one and other the second. A fact recorded on only one
// side is dropped; facts recorded on both are merged.
func (s *CompilerState) Join(other *CompilerState) {
	for key, entry := range s.paths {
		o, ok := other.paths[key]
		if !ok {
			delete(s.paths, key)
			continue
		}
		entry.typeDef = entry.typeDef.Merge(o.typeDef)
		s.paths[key] = entry
	}
	for name, td := range s.variables {
		o, ok := other.variables[name]
		if !ok {
			delete(s.variables, name)
			continue
		}
		s.variables[name] = td.Merge(o)
	}
}

// ProgramState holds the mutable state of a single execution.
type ProgramState struct {
	variables map[string]value.Value
}

// NewProgramState returns an empty program state.
func NewProgramState() *ProgramState {
	return &ProgramState{variables: make(map[string]value.Value)}
}

// Variable returns the value bound to name.
func (s *ProgramState) Variable(name string) (value.Value, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// SetVariable binds name to v.
func (s *ProgramState) SetVariable(name string, v value.Value) {
	s.variables[name] = v
}
