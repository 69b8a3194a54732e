package graph

import (
	"fmt"
	"strings"

	"github.com/litgraph/litgraph/internal/paper"
	"github.com/litgraph/litgraph/internal/storage"
)

// labelMaxLen bounds node labels; full titles live in the tooltip.
const labelMaxLen = 40

// tooltipAbstractMaxLen bounds the abstract excerpt in paper tooltips.
const tooltipAbstractMaxLen = 200

// unknownDiscipline groups unclassified papers.
const unknownDiscipline = "Other"

// Build assembles the full relationship graph from a paper collection and
// previously computed similarity records. Construction is additive in a
// fixed order: paper nodes, then the author network, then similarity edges
// at or above threshold, then discipline clusters. Similarity records whose
// endpoints are not in the paper collection are dropped, which supports
// building a graph over a filtered subset.
func Build(papers []paper.Paper, sims []storage.Similarity, threshold float64) *Graph {
	g := New()

	for i := range papers {
		g.AddPaper(&papers[i])
	}
	g.addAuthorNetwork(papers)
	for _, s := range sims {
		if s.Score >= threshold {
			g.AddSimilar(s.Paper1ID, s.Paper2ID, s.Score)
		}
	}
	g.addDisciplineClusters(papers)

	return g
}

// AddPaper upserts a paper node colored by its discipline.
func (g *Graph) AddPaper(p *paper.Paper) {
	discipline := p.Discipline
	if discipline == "" {
		discipline = unknownDiscipline
	}

	g.addNode(Node{
		ID:      PaperNodeID(p.ID),
		Kind:    KindPaper,
		Label:   truncate(p.Title, labelMaxLen),
		Tooltip: paperTooltip(p),
		Color:   g.palette.colorFor(discipline),
		Size:    25,
		Shape:   "dot",
	})
}

// addAuthorNetwork upserts author nodes, "authored" edges into each
// author's papers, and one "collaborates" edge per unordered co-author pair.
func (g *Graph) addAuthorNetwork(papers []paper.Paper) {
	for _, p := range papers {
		paperID := PaperNodeID(p.ID)
		for _, name := range p.Authors {
			name = paper.NormalizeAuthor(name)
			if name == "" {
				continue
			}
			g.addNode(Node{
				ID:      AuthorNodeID(name),
				Kind:    KindAuthor,
				Label:   name,
				Tooltip: "Author: " + name,
				Color:   authorColor,
				Size:    20,
				Shape:   "diamond",
			})
			g.addEdge(Edge{
				Source:   AuthorNodeID(name),
				Target:   paperID,
				Relation: RelationAuthored,
				Color:    authoredColor,
				Width:    1,
			}, false)
		}

		for i := 0; i < len(p.Authors); i++ {
			for j := i + 1; j < len(p.Authors); j++ {
				a1 := paper.NormalizeAuthor(p.Authors[i])
				a2 := paper.NormalizeAuthor(p.Authors[j])
				if a1 == "" || a2 == "" || a1 == a2 {
					continue
				}
				g.addEdge(Edge{
					Source:   AuthorNodeID(a1),
					Target:   AuthorNodeID(a2),
					Relation: RelationCollaborates,
					Color:    collaborateColor,
					Width:    2,
					Dashed:   true,
				}, true)
			}
		}
	}
}

// AddSimilar adds a "similar" edge between two paper nodes. A no-op when
// either endpoint is not in the graph.
func (g *Graph) AddSimilar(paper1ID, paper2ID int64, score float64) {
	width := score * 5
	if width < 1 {
		width = 1
	}
	g.addEdge(Edge{
		Source:     PaperNodeID(paper1ID),
		Target:     PaperNodeID(paper2ID),
		Relation:   RelationSimilar,
		Color:      similarColor,
		Width:      width,
		Similarity: score,
	}, true)
}

// addDisciplineClusters groups papers by discipline and adds one star node
// per discipline with dashed "contains" edges into its papers.
func (g *Graph) addDisciplineClusters(papers []paper.Paper) {
	groups := make(map[string][]int64)
	var order []string
	for _, p := range papers {
		discipline := p.Discipline
		if discipline == "" {
			discipline = unknownDiscipline
		}
		if _, seen := groups[discipline]; !seen {
			order = append(order, discipline)
		}
		groups[discipline] = append(groups[discipline], p.ID)
	}

	for _, discipline := range order {
		paperIDs := groups[discipline]
		color := g.palette.colorFor(discipline)
		g.addNode(Node{
			ID:      DisciplineNodeID(discipline),
			Kind:    KindDiscipline,
			Label:   discipline,
			Tooltip: fmt.Sprintf("Discipline: %s\nPapers: %d", discipline, len(paperIDs)),
			Color:   color,
			Size:    35,
			Shape:   "star",
		})
		for _, id := range paperIDs {
			g.addEdge(Edge{
				Source:   DisciplineNodeID(discipline),
				Target:   PaperNodeID(id),
				Relation: RelationContains,
				Color:    color,
				Width:    1,
				Dashed:   true,
			}, false)
		}
	}
}

// AddCitation adds a "cites" edge between two paper nodes. A no-op when
// either endpoint is not in the graph.
func (g *Graph) AddCitation(fromPaperID, toPaperID int64) {
	g.addEdge(Edge{
		Source:   PaperNodeID(fromPaperID),
		Target:   PaperNodeID(toPaperID),
		Relation: RelationCites,
		Color:    citesColor,
		Width:    2,
	}, false)
}

// paperTooltip summarizes a paper for hover display.
func paperTooltip(p *paper.Paper) string {
	var b strings.Builder
	b.WriteString(p.Title)

	authors := paper.FormatAuthors(p.Authors, 3)
	if authors == "" {
		authors = "unknown"
	}
	fmt.Fprintf(&b, "\nAuthors: %s", authors)

	if p.Discipline != "" {
		fmt.Fprintf(&b, "\nDiscipline: %s", p.Discipline)
	}
	if p.PaperType != "" {
		fmt.Fprintf(&b, "\nType: %s", p.PaperType)
	}

	excerpt := p.Summary
	if excerpt == "" {
		excerpt = p.Abstract
	}
	if excerpt != "" {
		fmt.Fprintf(&b, "\n%s", truncate(excerpt, tooltipAbstractMaxLen))
	}
	return b.String()
}

// truncate shortens s to at most maxLen runes, appending "..." if cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
