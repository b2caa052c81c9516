package drawer

import (
	"github.com/askiada/go-compose/pkg/compose/measure"
	"github.com/askiada/go-compose/pkg/compose/model"
)

// Drawer is an interface that defines the methods for drawing a composition.
type Drawer interface {
	// AddUnit adds a unit to the drawing. id is unique in the drawing, name is what gets displayed and
	// matched against measure metrics.
	AddUnit(id, name string, kind model.Kind) error
	// AddLink links a composite to one of its parts.
	AddLink(parentID, childID, role string) error
	// AddMeasure annotates the drawn units with the metrics of msr.
	AddMeasure(msr measure.Measure) error
	// Draw writes the drawing.
	Draw() error
}
