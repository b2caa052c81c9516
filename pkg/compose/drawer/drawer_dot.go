package drawer

import (
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-compose/internal/store"
	"github.com/askiada/go-compose/pkg/compose/measure"
	"github.com/askiada/go-compose/pkg/compose/model"
)

// DOTDrawer draws a composition as a Graphviz DOT graph.
type DOTDrawer struct {
	graph graph.Graph[string, string]
	store store.CustomStore[string, string]
	// units maps a unit name to the vertices showing it.
	units map[string][]string
	open  func() (io.WriteCloser, error)
}

// NewDOTDrawer creates a drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer) *DOTDrawer {
	return newDOTDrawer(func() (io.WriteCloser, error) {
		return nopCloser{wrt}, nil
	})
}

// NewDOTFileDrawer creates a drawer writing to the file dotFileName, created on Draw.
func NewDOTFileDrawer(dotFileName string) *DOTDrawer {
	return newDOTDrawer(func() (io.WriteCloser, error) {
		file, err := os.Create(dotFileName)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create file %s", dotFileName)
		}

		return file, nil
	})
}

func newDOTDrawer(open func() (io.WriteCloser, error)) *DOTDrawer {
	st := store.NewOrderedStore[string, string]()

	return &DOTDrawer{
		graph: graph.NewWithStore(graph.StringHash, st, graph.Directed(), graph.PreventCycles()),
		store: st,
		units: make(map[string][]string),
		open:  open,
	}
}

// kindColors are the fill colours of each kind of unit, as RGB.
var kindColors = map[model.Kind][3]uint8{
	model.FuncKind:     {255, 255, 255},
	model.PipelineKind: {204, 229, 255},
	model.BranchKind:   {255, 242, 204},
	model.AndKind:      {217, 234, 211},
	model.OrKind:       {234, 209, 220},
	model.CircuitKind:  {255, 229, 204},
	model.NoneKind:     {217, 217, 217},
}

// AddUnit adds a unit to the graph.
func (d *DOTDrawer) AddUnit(id, name string, kind model.Kind) error {
	label := string(kind)
	if name != "" {
		label = name + " (" + string(kind) + ")"
	}

	fill, err := hexColor(kindColors[kind])
	if err != nil {
		return err
	}

	err = d.graph.AddVertex(id,
		graph.VertexAttribute("label", label),
		graph.VertexAttribute("shape", "box"),
		graph.VertexAttribute("style", "filled"),
		graph.VertexAttribute("fillcolor", fill),
	)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	if name != "" {
		d.units[name] = append(d.units[name], id)
	}

	return nil
}

// AddLink adds a link from a composite to one of its parts.
func (d *DOTDrawer) AddLink(parentID, childID, role string) error {
	err := d.graph.AddEdge(parentID, childID, graph.EdgeAttribute("label", role))
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentID, childID)
	}

	return nil
}

// Draw writes the DOT graph.
func (d *DOTDrawer) Draw() error {
	wrt, err := d.open()
	if err != nil {
		return err
	}

	err = dot(d.store, wrt, GraphAttribute("rankdir", "TB"))
	if err != nil {
		_ = wrt.Close()
		return errors.Wrap(err, "unable to write dot graph")
	}

	err = wrt.Close()
	if err != nil {
		return errors.Wrap(err, "unable to close dot output")
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every measured unit with its average duration and run count, and colours its
// border from blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := msr.AllMetrics()

	allElapsed := make(map[time.Duration]string)
	sortedElapsed := []time.Duration{}

	for name, mt := range metrics {
		if _, ok := d.units[name]; !ok {
			continue
		}

		avg := mt.AVGDuration()
		if _, ok := allElapsed[avg]; ok {
			continue
		}

		allElapsed[avg] = ""
		sortedElapsed = append(sortedElapsed, avg)
	}

	if len(sortedElapsed) == 0 {
		return nil
	}

	sort.Slice(sortedElapsed, func(i, j int) bool {
		return sortedElapsed[i] > sortedElapsed[j]
	})

	maxValue := sortedElapsed[0]
	minValue := sortedElapsed[len(sortedElapsed)-1]

	for curr := range allElapsed {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(curr-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := hexColor([3]uint8{uint8(red), 0, uint8(blue)})
		if err != nil {
			return err
		}

		allElapsed[curr] = colour
	}

	for name, mt := range metrics {
		avg := mt.AVGDuration()
		xlabel := fmt.Sprintf("avg %s, %d runs", avg, mt.Runs())

		for _, id := range d.units[name] {
			err := d.store.UpdateVertex(id,
				graph.VertexAttribute("xlabel", xlabel),
				graph.VertexAttribute("color", allElapsed[avg]),
				graph.VertexAttribute("penwidth", "2"),
			)
			if err != nil {
				return errors.Wrap(err, "unable to update vertex")
			}
		}
	}

	return nil
}

func hexColor(rgb [3]uint8) (string, error) {
	colour, err := colors.RGB(rgb[0], rgb[1], rgb[2]) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return colour.ToHEX().String(), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
{{range $k, $v := .Attributes}}	{{$k}}="{{quote $v}}";
{{end}}{{range $s := .Statements}}	"{{quote .Source}}" {{if .Target}}{{$.EdgeOperator}} "{{quote .Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{quote $v}}", {{end}}weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}}{{range $k, $v := .SourceAttributes}}{{$k}}="{{quote $v}}", {{end}}weight={{.SourceWeight}} ]{{end}};
{{end}}}
`

// quoteEscaper escapes the content of a double-quoted DOT string.
var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(st graph.Store[string, string], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(st, options...)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute sets a graph level attribute.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

// generateDOT reads the store directly: its listing order is the drawing order.
func generateDOT(st graph.Store[string, string], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   make(map[string]string),
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	vertices, err := st.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}

	for _, vertex := range vertices {
		_, properties, err := st.Vertex(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		sourceAttributes := make(map[string]string, len(properties.Attributes))
		htmlAttributes := make(map[string]string)

		for k, v := range properties.Attributes {
			sourceAttributes[k] = v
		}

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`,
				html.EscapeString(sourceAttributes["label"]), html.EscapeString(xlabel))

			delete(sourceAttributes, "xlabel")
			delete(sourceAttributes, "label")
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     properties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})
	}

	edges, err := st.ListEdges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}

	for _, edge := range edges {
		desc.Statements = append(desc.Statements, statement{
			Source:         edge.Source,
			Target:         edge.Target,
			EdgeWeight:     edge.Properties.Weight,
			EdgeAttributes: edge.Properties.Attributes,
		})
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").
		Funcs(template.FuncMap{"quote": quoteEscaper.Replace}).
		Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
