package graph

// Fixed node and edge colors.
const (
	authorColor       = "#ffcc00"
	authoredColor     = "#cccccc"
	collaborateColor  = "#ffcc00"
	similarColor      = "#97c2fc"
	citesColor        = "#ff6b6b"
	defaultPaperColor = "#97c2fc"
)

// disciplineColors is the fixed palette disciplines draw from, in
// assignment order.
var disciplineColors = []string{
	"#97c2fc", "#ffcc00", "#fb7e81", "#7be141", "#ad85e4",
	"#6ee7b7", "#fcd34d", "#f87171", "#a78bfa", "#60a5fa",
	"#34d399", "#fbbf24", "#f472b6", "#818cf8", "#2dd4bf",
}

// palette assigns each discipline a color in first-seen order, cycling
// through the fixed list when exhausted. One palette belongs to one graph
// build; the same discipline always maps to the same color within a build.
type palette struct {
	assigned map[string]string
}

func newPalette() *palette {
	return &palette{assigned: make(map[string]string)}
}

func (p *palette) colorFor(discipline string) string {
	if color, ok := p.assigned[discipline]; ok {
		return color
	}
	color := disciplineColors[len(p.assigned)%len(disciplineColors)]
	p.assigned[discipline] = color
	return color
}
