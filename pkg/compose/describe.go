package compose

import (
	"strconv"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Describe returns the shape of the composition rooted at u.
func Describe[S any](u Unit[S]) *model.Tree {
	return describe(u, "0", "root")
}

func describe[S any](u Unit[S], id, role string) *model.Tree {
	node := &model.Tree{
		ID:   id,
		Role: role,
		Info: model.UnitInfo{Kind: kindOf(u)},
	}

	if o, ok := u.(*observed[S]); ok {
		node.Info = o.info
		u = o.unit
	}

	child := func(c Unit[S], role string) {
		node.Children = append(node.Children, describe(c, id+"."+strconv.Itoa(len(node.Children)), role))
	}

	switch v := u.(type) {
	case *Pipeline[S]:
		for i, step := range v.Units() {
			child(step, "step "+strconv.Itoa(i))
		}
	case *Circuit[S]:
		for i, stage := range v.Stages() {
			child(stage, "stage "+strconv.Itoa(i))
		}
	case *Branch[S]:
		condition, action := v.Parts()
		child(condition, "condition")
		child(action, "action")
	case *And[S]:
		first, second := v.Parts()
		child(first, "first")
		child(second, "second")
	case *Or[S]:
		first, second := v.Parts()
		child(first, "first")
		child(second, "second")
	}

	return node
}

func kindOf[S any](u Unit[S]) model.Kind {
	switch v := u.(type) {
	case nil:
		return model.NoneKind
	case *observed[S]:
		return kindOf(v.unit)
	case *Pipeline[S]:
		return model.PipelineKind
	case *Branch[S]:
		return model.BranchKind
	case *And[S]:
		return model.AndKind
	case *Or[S]:
		return model.OrKind
	case *Circuit[S]:
		return model.CircuitKind
	default:
		return model.FuncKind
	}
}
