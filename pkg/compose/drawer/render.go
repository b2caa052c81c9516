package drawer

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/measure"
	"github.com/askiada/go-compose/pkg/compose/model"
)

// Render draws tree with d. When msr is not nil, its metrics are added before drawing.
func Render(d Drawer, tree *model.Tree, msr measure.Measure) error {
	err := tree.Walk(func(parent, node *model.Tree) error {
		err := d.AddUnit(node.ID, node.Info.Name, node.Info.Kind)
		if err != nil {
			return errors.Wrapf(err, "unable to add unit %s", node.ID)
		}

		if parent == nil {
			return nil
		}

		err = d.AddLink(parent.ID, node.ID, node.Role)
		if err != nil {
			return errors.Wrapf(err, "unable to link %s to %s", parent.ID, node.ID)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if msr != nil {
		err = d.AddMeasure(msr)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = d.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw composition")
	}

	return nil
}
