package viz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/litgraph/litgraph/internal/graph"
	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/storage"
)

func builtGraph() *graph.Graph {
	papers := []paper.Paper{
		{ID: 1, Title: "Paper One", Authors: []string{"Alice"}, Classification: paper.Classification{Discipline: "Physics"}},
		{ID: 2, Title: "Paper Two", Authors: []string{"Alice"}, Classification: paper.Classification{Discipline: "Physics"}},
	}
	sims := []storage.Similarity{{Paper1ID: 1, Paper2ID: 2, Score: 0.75}}
	return graph.Build(papers, sims, 0.6)
}

func TestToCytoscapeJSON(t *testing.T) {
	jsonStr, err := ToCytoscapeJSON(builtGraph())
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error: %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(jsonStr), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	// 2 papers + 1 author + 1 discipline
	if len(elements.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(elements.Nodes))
	}
	// 2 authored + 1 similar + 2 contains
	if len(elements.Edges) != 5 {
		t.Fatalf("edges = %d, want 5", len(elements.Edges))
	}

	ids := make(map[string]bool)
	for _, e := range elements.Edges {
		if ids[e.Data.ID] {
			t.Errorf("duplicate edge id %q", e.Data.ID)
		}
		ids[e.Data.ID] = true
	}

	var paperNode *CytoscapeNodeData
	for i := range elements.Nodes {
		if elements.Nodes[i].Data.ID == "paper_1" {
			paperNode = &elements.Nodes[i].Data
		}
	}
	if paperNode == nil {
		t.Fatal("paper_1 node missing")
	}
	if paperNode.Shape != "ellipse" {
		t.Errorf("paper shape = %q, want dot mapped to ellipse", paperNode.Shape)
	}
	if paperNode.Kind != "paper" || paperNode.Size != 25 {
		t.Errorf("paper node data = %+v", paperNode)
	}
}

func TestCytoscapeShape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dot", "ellipse"},
		{"diamond", "diamond"},
		{"star", "star"},
		{"unknown", "ellipse"},
	}
	for _, tt := range tests {
		if got := cytoscapeShape(tt.in); got != tt.want {
			t.Errorf("cytoscapeShape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(builtGraph(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() error: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"cytoscape",
		"paper_1",
		"Literature Knowledge Graph",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("generated HTML missing %q", want)
		}
	}
}

func TestGenerateHTMLLayouts(t *testing.T) {
	g := builtGraph()

	for _, layout := range ValidLayouts {
		opts := DefaultOptions()
		opts.Layout = layout
		if _, err := GenerateHTML(g, opts); err != nil {
			t.Errorf("GenerateHTML() with layout %q: %v", layout, err)
		}
	}

	opts := DefaultOptions()
	opts.Layout = "spiral"
	if _, err := GenerateHTML(g, opts); err == nil {
		t.Error("GenerateHTML() accepted invalid layout")
	}
}

func TestGenerateHTMLEmptyGraph(t *testing.T) {
	html, err := GenerateHTML(graph.New(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateHTML() on empty graph: %v", err)
	}
	if !strings.Contains(html, "No graph data") {
		t.Error("empty graph HTML missing empty-state message")
	}

	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("GenerateHTML(nil) did not error")
	}
}
