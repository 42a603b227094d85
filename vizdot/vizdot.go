// Package vizdot renders a solved equation system's Location wiring as a
// DOT graph and, optionally, an image file. Grounded on utils/dot/dot.go
// (teacher): the same DotGraph/DotNode/DotEdge/DotAttrs template-assembly
// shape, rendered here with github.com/goccy/go-graphviz's in-process
// graphviz.ParseBytes + RenderFilename path instead of the teacher's
// exec.Command fallback to a system "dot" binary — a standalone analyzer
// binary should not depend on one being installed.
package vizdot

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"

	"github.com/LucaGuffanti/abstract-interpreter/equation"
	"github.com/LucaGuffanti/abstract-interpreter/location"
)

type attrs map[string]string

func (a attrs) String() string {
	parts := make([]string, 0, len(a))
	for k, v := range a {
		parts = append(parts, fmt.Sprintf("%s=%q", k, v))
	}
	return strings.Join(parts, " ")
}

type node struct {
	ID    string
	Label string
	Attrs attrs
}

type edge struct {
	From, To string
	Attrs    attrs
}

type graph struct {
	Nodes []node
	Edges []edge
}

const dotTemplate = `digraph EquationSystem {
	rankdir="TB";
	node [shape="box" style="filled" fontname="Verdana"];
	edge [fontname="Verdana"];
	{{- range .Nodes}}
	{{printf "%q [ label=%q %s ]" .ID .Label .Attrs}}
	{{- end}}
	{{- range .Edges}}
	{{printf "%q -> %q [ %s ]" .From .To .Attrs}}
	{{- end}}
}
`

func fillColor(k location.Kind) string {
	switch k {
	case location.Assignment:
		return "honeydew"
	case location.Postcondition:
		return "lightyellow"
	case location.IfElseHead, location.EndIf:
		return "lightblue"
	case location.WhileHead, location.EndWhile:
		return "lightpink"
	default:
		return "white"
	}
}

// Build assembles the DOT source for sys's Locations, in program order,
// with one edge between each pair of consecutive Locations. Edges leaving
// an IfElseHead or WhileHead, whose successor reads its store from a
// queue, are dashed; all other edges are solid.
func Build(sys *equation.System) []byte {
	g := &graph{}
	ids := make([]string, len(sys.Locations))
	for i, loc := range sys.Locations {
		ids[i] = fmt.Sprintf("L%d", i)
		g.Nodes = append(g.Nodes, node{
			ID:    ids[i],
			Label: fmt.Sprintf("%d: %s\n%s", i, loc.Kind, loc.Label),
			Attrs: attrs{"fillcolor": fillColor(loc.Kind)},
		})
	}
	for i, loc := range sys.Locations {
		if i+1 >= len(sys.Locations) {
			continue
		}
		style := attrs{}
		if loc.Kind == location.IfElseHead || loc.Kind == location.WhileHead {
			style["style"] = "dashed"
			style["label"] = "queue"
		}
		g.Edges = append(g.Edges, edge{From: ids[i], To: ids[i+1], Attrs: style})
	}
	var buf bytes.Buffer
	t := template.Must(template.New("dot").Parse(dotTemplate))
	if err := t.Execute(&buf, g); err != nil {
		return nil
	}
	return buf.Bytes()
}

// Render writes the DOT source for sys to outPath, in the format implied
// by outPath's extension (falling back to "svg").
func Render(sys *equation.System, outPath string) error {
	dot := Build(sys)
	format := "svg"
	if idx := strings.LastIndex(outPath, "."); idx >= 0 && idx < len(outPath)-1 {
		format = outPath[idx+1:]
	}

	gv := graphviz.New()
	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("vizdot: parsing generated dot: %w", err)
	}
	defer func() {
		_ = g.Close()
		_ = gv.Close()
	}()
	if err := gv.RenderFilename(g, graphviz.Format(format), outPath); err != nil {
		return fmt.Errorf("vizdot: rendering %s: %w", outPath, err)
	}
	return nil
}
