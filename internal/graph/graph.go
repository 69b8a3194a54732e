// Package graph assembles the typed relationship graph over papers,
// authors, and disciplines for visualization.
package graph

import (
	"fmt"

	"github.com/litgraph/litgraph/internal/paper"
)

// NodeKind identifies what a node represents and its default rendering.
type NodeKind string

const (
	KindPaper      NodeKind = "paper"
	KindAuthor     NodeKind = "author"
	KindDiscipline NodeKind = "discipline"
)

// Relation identifies the semantics and styling of an edge.
type Relation string

const (
	RelationAuthored     Relation = "authored"
	RelationCollaborates Relation = "collaborates"
	RelationSimilar      Relation = "similar"
	RelationContains     Relation = "contains"
	RelationCites        Relation = "cites"
)

// Node is one graph node with its rendering attributes.
type Node struct {
	ID      string   `json:"id"`
	Kind    NodeKind `json:"kind"`
	Label   string   `json:"label"`
	Tooltip string   `json:"tooltip,omitempty"`
	Color   string   `json:"color"`
	Size    int      `json:"size"`
	Shape   string   `json:"shape"`
}

// Edge is one directed graph edge with its rendering attributes.
type Edge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Relation   Relation `json:"relation"`
	Color      string   `json:"color"`
	Width      float64  `json:"width"`
	Similarity float64  `json:"similarity,omitempty"`
	Dashed     bool     `json:"dashed,omitempty"`
}

// Stats summarizes a built graph.
type Stats struct {
	TotalNodes      int              `json:"total_nodes"`
	TotalEdges      int              `json:"total_edges"`
	NodesByKind     map[NodeKind]int `json:"nodes_by_kind"`
	EdgesByRelation map[Relation]int `json:"edges_by_relation"`
}

// Graph is a directed multi-relation graph. It is a projection over stored
// papers and similarities, rebuilt on demand; it owns no persistent state.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     []Edge
	edgeSeen  map[edgeKey]bool
	palette   *palette
}

// edgeKey identifies an edge for duplicate suppression. For undirected
// relations the endpoints are stored in canonical order.
type edgeKey struct {
	source, target string
	relation       Relation
}

// New returns an empty graph with a fresh discipline palette. Palette state
// is owned by the graph, so separate builds assign colors independently and
// reproducibly.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edgeSeen: make(map[edgeKey]bool),
		palette:  newPalette(),
	}
}

// Deterministic node identity keys.

// PaperNodeID returns the node key for a stored paper id.
func PaperNodeID(id int64) string {
	return fmt.Sprintf("paper_%d", id)
}

// AuthorNodeID returns the node key for an author name.
func AuthorNodeID(name string) string {
	return "author_" + paper.NormalizeAuthor(name)
}

// DisciplineNodeID returns the node key for a discipline name.
func DisciplineNodeID(name string) string {
	return "discipline_" + name
}

// addNode upserts a node. Adding an id that already exists replaces nothing
// and is not an error; construction steps are additive and later steps must
// tolerate nodes added earlier.
func (g *Graph) addNode(n Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	stored := n
	g.nodes[n.ID] = &stored
	g.nodeOrder = append(g.nodeOrder, n.ID)
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// addEdge appends an edge if both endpoints exist and the same edge was not
// added before. Edges whose endpoints are missing are silently dropped;
// partial or filtered graphs rely on this. undirected controls whether the
// duplicate check ignores endpoint order.
func (g *Graph) addEdge(e Edge, undirected bool) {
	if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
		return
	}

	key := edgeKey{e.Source, e.Target, e.Relation}
	if undirected && key.source > key.target {
		key.source, key.target = key.target, key.source
	}
	if g.edgeSeen[key] {
		return
	}
	g.edgeSeen[key] = true
	g.edges = append(g.edges, e)
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, *g.nodes[id])
	}
	return nodes
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Stats returns node and edge counts, total and per kind.
func (g *Graph) Stats() Stats {
	s := Stats{
		TotalNodes:      len(g.nodes),
		TotalEdges:      len(g.edges),
		NodesByKind:     make(map[NodeKind]int),
		EdgesByRelation: make(map[Relation]int),
	}
	for _, n := range g.nodes {
		s.NodesByKind[n.Kind]++
	}
	for _, e := range g.edges {
		s.EdgesByRelation[e.Relation]++
	}
	return s
}
