package runtime

import (
	"sort"

	"blur/interpreter-go/pkg/ast"
)

// Array is a fixed-size run of independent history cells.
type Array struct {
	Elem  ast.Type
	Cells []*HistoryValue
}

// NewArray allocates size empty cells of the element type.
func NewArray(elem ast.Type, size int) *Array {
	if size < 0 {
		size = 0
	}
	cells := make([]*HistoryValue, size)
	for i := range cells {
		cells[i] = NewHistoryValue(elem)
	}
	return &Array{Elem: elem, Cells: cells}
}

func (a *Array) Len() int { return len(a.Cells) }

// At bounds-checks index against [0, Len()).
func (a *Array) At(index int64) (*HistoryValue, error) {
	if index < 0 || index >= int64(len(a.Cells)) {
		return nil, IndexOutOfBounds(index, len(a.Cells))
	}
	return a.Cells[index], nil
}

// Environment is one lexical level. Levels chain through their parent, so
// the chain from the innermost level outward is the scope stack; pushing a
// scope is Extend and popping it is dropping the reference.
type Environment struct {
	vars   map[string]*HistoryValue
	arrays map[string]*Array
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]*HistoryValue),
		arrays: make(map[string]*Array),
		parent: parent,
	}
}

// Extend pushes a fresh child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Declare binds a variable in this level, replacing a same-level binding and
// silently shadowing outer ones.
func (e *Environment) Declare(name string, cell *HistoryValue) {
	e.vars[name] = cell
}

// DeclareArray binds an array in this level's array namespace.
func (e *Environment) DeclareArray(name string, arr *Array) {
	e.arrays[name] = arr
}

// Lookup finds the innermost variable binding for name. The returned cell is
// live: pushing to it mutates the binding.
func (e *Environment) Lookup(name string) (*HistoryValue, error) {
	for env := e; env != nil; env = env.parent {
		if cell, ok := env.vars[name]; ok {
			return cell, nil
		}
	}
	return nil, UndefinedVariable(name)
}

// LookupArray finds the innermost array binding for name.
func (e *Environment) LookupArray(name string) (*Array, error) {
	for env := e; env != nil; env = env.parent {
		if arr, ok := env.arrays[name]; ok {
			return arr, nil
		}
	}
	return nil, UndefinedVariable(name)
}

// ArrayKeys returns this level's array names in sorted order.
func (e *Environment) ArrayKeys() []string {
	keys := make([]string, 0, len(e.arrays))
	for k := range e.arrays {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of this level's variable bindings. The cells are
// shared, not cloned.
func (e *Environment) Snapshot() map[string]*HistoryValue {
	out := make(map[string]*HistoryValue, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
