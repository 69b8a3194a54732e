package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/litgraph/litgraph/internal/graph"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", or "grid"
	Title  string // page title, defaults to "Literature Knowledge Graph"
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{Layout: "force"}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML page for the graph.
func GenerateHTML(g *graph.Graph, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}
	if opts.Title == "" {
		opts.Title = "Literature Knowledge Graph"
	}

	if len(g.Nodes()) == 0 {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := ToCytoscapeJSON(g)
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     opts.Title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js
// layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Literature Knowledge Graph - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>Your library doesn't have any papers yet.</p>
    <p>Ingest PDFs with <code>lg ingest</code>, then rebuild with <code>lg graph</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #legend {
      position: fixed;
      top: 10px;
      left: 10px;
      background: white;
      padding: 12px 15px;
      border-radius: 8px;
      box-shadow: 0 2px 10px rgba(0,0,0,0.1);
      font-size: 13px;
      z-index: 1000;
    }
    #legend .heading {
      font-weight: bold;
      margin-bottom: 8px;
    }
    #legend .swatch {
      display: inline-block;
      width: 12px;
      height: 12px;
      margin-right: 8px;
      border-radius: 50%;
    }
    #legend .diamond {
      transform: rotate(45deg);
      border-radius: 0;
    }
    #legend .note {
      color: #666;
      font-size: 12px;
      margin-top: 8px;
      border-top: 1px solid #eee;
      padding-top: 8px;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 320px;
      font-size: 13px;
      white-space: pre-line;
      z-index: 1000;
      pointer-events: none;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="legend">
    <div class="heading">Literature Knowledge Graph</div>
    <div><span class="swatch" style="background:#97c2fc"></span>Paper</div>
    <div><span class="swatch diamond" style="background:#ffcc00"></span>Author</div>
    <div><span class="swatch" style="background:#fb7e81"></span>Discipline</div>
    <div class="note">
      <div>Solid: similarity</div>
      <div>Dashed: discipline membership, collaboration</div>
    </div>
  </div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'shape': 'data(shape)',
              'width': 'data(size)',
              'height': 'data(size)',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '10px',
              'text-valign': 'bottom',
              'text-margin-y': '5px'
            }
          },
          {
            selector: 'node[kind="discipline"]',
            style: {
              'font-size': '12px',
              'font-weight': 'bold'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': 'data(color)',
              'width': 'data(width)',
              'curve-style': 'bezier',
              'target-arrow-shape': 'none'
            }
          },
          {
            selector: 'edge[relation="cites"]',
            style: {
              'target-arrow-shape': 'triangle',
              'target-arrow-color': 'data(color)'
            }
          },
          {
            selector: 'edge[?dashed]',
            style: {
              'line-style': 'dashed'
            }
          },
          {
            selector: 'node.dimmed, edge.dimmed',
            style: {
              'opacity': 0.25
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#ff6b6b'
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 100
        }
      });

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        if (!content) return;
        tooltip.textContent = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      cy.on('mouseover', 'node', function(evt) {
        showTooltip(evt, evt.target.data('tooltip'));
      });
      cy.on('mouseout', 'node', hideTooltip);

      cy.on('mouseover', 'edge', function(evt) {
        const data = evt.target.data();
        let text = data.relation;
        if (data.relation === 'similar' && data.similarity) {
          text += ': ' + (data.similarity * 100).toFixed(1) + '%';
        }
        showTooltip(evt, text);
      });
      cy.on('mouseout', 'edge', hideTooltip);

      cy.on('tap', 'node', function(evt) {
        const node = evt.target;
        cy.elements().removeClass('highlighted dimmed');
        const neighborhood = node.neighborhood().add(node);
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
