// Package viz renders the relationship graph as Cytoscape.js JSON and a
// self-contained HTML page.
package viz

import (
	"encoding/json"
	"fmt"

	"github.com/litgraph/litgraph/internal/graph"
)

// CytoscapeElements is the Cytoscape.js elements format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode wraps node data in the element envelope.
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData carries the node attributes the stylesheet reads.
type CytoscapeNodeData struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip,omitempty"`
	Color   string `json:"color"`
	Size    int    `json:"size"`
	Shape   string `json:"shape"`
}

// CytoscapeEdge wraps edge data in the element envelope.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData carries the edge attributes the stylesheet reads.
type CytoscapeEdgeData struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Relation   string  `json:"relation"`
	Color      string  `json:"color"`
	Width      float64 `json:"width"`
	Similarity float64 `json:"similarity,omitempty"`
	Dashed     bool    `json:"dashed"`
}

// ToCytoscapeJSON converts a built graph to Cytoscape.js elements JSON.
func ToCytoscapeJSON(g *graph.Graph) (string, error) {
	nodes := g.Nodes()
	edges := g.Edges()

	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(nodes)),
		Edges: make([]CytoscapeEdge, 0, len(edges)),
	}

	for _, n := range nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{
			Data: CytoscapeNodeData{
				ID:      n.ID,
				Kind:    string(n.Kind),
				Label:   n.Label,
				Tooltip: n.Tooltip,
				Color:   n.Color,
				Size:    n.Size,
				Shape:   cytoscapeShape(n.Shape),
			},
		})
	}

	for i, e := range edges {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:         edgeID(e, i),
				Source:     e.Source,
				Target:     e.Target,
				Relation:   string(e.Relation),
				Color:      e.Color,
				Width:      e.Width,
				Similarity: e.Similarity,
				Dashed:     e.Dashed,
			},
		})
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// cytoscapeShape maps graph shape names to Cytoscape.js shape names.
func cytoscapeShape(shape string) string {
	switch shape {
	case "dot":
		return "ellipse"
	case "diamond":
		return "diamond"
	case "star":
		return "star"
	default:
		return "ellipse"
	}
}

// edgeID generates a unique edge ID for the current visualization session.
// IDs are based on slice position and are not stable across builds.
func edgeID(e graph.Edge, index int) string {
	return fmt.Sprintf("%s-%s-%s-%d", e.Source, e.Target, e.Relation, index)
}
