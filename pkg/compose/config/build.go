package config

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/model"
)

var (
	ErrUnknownKind        = errors.New("unknown kind")
	ErrUnknownRef         = errors.New("unknown ref")
	ErrUnknownComposition = errors.New("unknown composition")
	ErrMissingField       = errors.New("missing field")
)

// Registry maps the refs of a configuration to units.
type Registry[S any] map[string]compose.Unit[S]

// Build creates the unit declared by spec. Named specs are observed by observers.
func Build[S any](spec Spec, registry Registry[S], observers ...model.Observer) (compose.Unit[S], error) {
	b := builder[S]{registry: registry, observers: observers}

	return b.build(&spec, "$")
}

// BuildComposition builds the composition called name.
func BuildComposition[S any](cfg *Config, name string, registry Registry[S], observers ...model.Observer) (compose.Unit[S], error) {
	spec, ok := cfg.Compositions[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownComposition, "%q", name)
	}

	b := builder[S]{registry: registry, observers: observers}

	return b.build(&spec, name)
}

// BuildRoot builds the root composition of cfg.
func BuildRoot[S any](cfg *Config, registry Registry[S], observers ...model.Observer) (compose.Unit[S], error) {
	if cfg.Root == "" {
		return nil, errors.Wrap(ErrMissingField, "root")
	}

	return BuildComposition(cfg, cfg.Root, registry, observers...)
}

type builder[S any] struct {
	registry  Registry[S]
	observers []model.Observer
}

func (b *builder[S]) build(spec *Spec, path string) (compose.Unit[S], error) {
	unit, err := b.unit(spec, path)
	if err != nil {
		return nil, err
	}

	if spec.Name != "" {
		unit = compose.Observe(spec.Name, unit, b.observers...)
	}

	return unit, nil
}

func (b *builder[S]) unit(spec *Spec, path string) (compose.Unit[S], error) {
	switch model.Kind(spec.Kind) {
	case "", model.FuncKind:
		if spec.Ref == "" {
			return nil, errors.Wrapf(ErrMissingField, "%s: ref", path)
		}

		unit, ok := b.registry[spec.Ref]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownRef, "%s: %q", path, spec.Ref)
		}

		return unit, nil
	case model.NoneKind:
		return nil, nil
	case model.PipelineKind:
		units, err := b.list(spec.Units, path+".units")
		if err != nil {
			return nil, err
		}

		return compose.NewPipeline(units...), nil
	case model.CircuitKind:
		stages, err := b.list(spec.Units, path+".units")
		if err != nil {
			return nil, err
		}

		return compose.NewCircuit(stages...), nil
	case model.BranchKind:
		condition, action, err := b.pair(spec.Condition, spec.Action, path, "condition", "action")
		if err != nil {
			return nil, err
		}

		return compose.NewBranch(condition, action), nil
	case model.AndKind:
		first, second, err := b.pair(spec.First, spec.Second, path, "first", "second")
		if err != nil {
			return nil, err
		}

		return compose.NewAnd(first, second), nil
	case model.OrKind:
		first, second, err := b.pair(spec.First, spec.Second, path, "first", "second")
		if err != nil {
			return nil, err
		}

		return compose.NewOr(first, second), nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%s: %q", path, spec.Kind)
	}
}

func (b *builder[S]) list(specs []Spec, path string) ([]compose.Unit[S], error) {
	units := make([]compose.Unit[S], 0, len(specs))

	for i := range specs {
		unit, err := b.build(&specs[i], path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}

		units = append(units, unit)
	}

	return units, nil
}

// pair builds both operands of a binary composite; both must be declared, use kind none for an
// operand that always fails.
func (b *builder[S]) pair(left, right *Spec, path, leftName, rightName string) (compose.Unit[S], compose.Unit[S], error) {
	if left == nil {
		return nil, nil, errors.Wrapf(ErrMissingField, "%s: %s", path, leftName)
	}

	if right == nil {
		return nil, nil, errors.Wrapf(ErrMissingField, "%s: %s", path, rightName)
	}

	l, err := b.build(left, path+"."+leftName)
	if err != nil {
		return nil, nil, err
	}

	r, err := b.build(right, path+"."+rightName)
	if err != nil {
		return nil, nil, err
	}

	return l, r, nil
}
