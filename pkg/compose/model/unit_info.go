package model

import "time"

// Kind identifies what a unit is made of.
type Kind string

const (
	FuncKind     Kind = "func"
	PipelineKind Kind = "pipeline"
	BranchKind   Kind = "branch"
	AndKind      Kind = "and"
	OrKind       Kind = "or"
	CircuitKind  Kind = "circuit"
	// NoneKind stands for a missing unit, which signals fail.
	NoneKind Kind = "none"
)

// UnitInfo describes a unit.
type UnitInfo struct {
	Name string
	Kind Kind
}

// Outcome is the terminal state of one run of a unit.
type Outcome string

const (
	// Passed means the unit invoked its continuation.
	Passed Outcome = "passed"
	// Stopped means the unit returned without invoking its continuation.
	Stopped Outcome = "stopped"
	// Failed means the unit returned an error.
	Failed Outcome = "failed"
)

// Report is what an observer receives once a unit returns.
type Report struct {
	Outcome Outcome
	Elapsed time.Duration
	Err     error
}

// Tree describes a composition.
type Tree struct {
	// ID is the position of the node in the tree, e.g. "0.1.2". It is unique within a tree.
	ID string
	// Role is the slot the node fills in its parent, e.g. "step 0" or "condition".
	Role     string
	Info     UnitInfo
	Children []*Tree
}

// Walk calls fn for t and every descendant, parents first.
func (t *Tree) Walk(fn func(parent, node *Tree) error) error {
	return t.walk(nil, fn)
}

func (t *Tree) walk(parent *Tree, fn func(parent, node *Tree) error) error {
	err := fn(parent, t)
	if err != nil {
		return err
	}

	for _, child := range t.Children {
		err = child.walk(t, fn)
		if err != nil {
			return err
		}
	}

	return nil
}
