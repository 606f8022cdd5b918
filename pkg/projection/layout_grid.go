package projection

import (
	"math"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// GridLayout places nodes row by row in insertion order
type GridLayout struct {
	config LayoutConfig
}

// NewGridLayout creates a new grid layout
func NewGridLayout(config LayoutConfig) *GridLayout {
	return &GridLayout{config: withDefaults(config)}
}

// ComputeLayout places node i at column i%cols, row i/cols
func (gl *GridLayout) ComputeLayout(nodes []uml.Identity, _ []uml.LinkRecord) (map[uml.Identity]Position, error) {
	positions := make(map[uml.Identity]Position, len(nodes))
	if len(nodes) == 0 {
		return positions, nil
	}

	cols := gl.config.Columns
	if cols <= 0 {
		cols = int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	}
	rows := (len(nodes) + cols - 1) / cols

	cellW := (gl.config.Width - 2*gl.config.Padding) / float64(cols)
	cellH := (gl.config.Height - 2*gl.config.Padding) / float64(rows)

	for i, id := range nodes {
		positions[id] = Position{
			X: gl.config.Padding + cellW*float64(i%cols) + cellW/2,
			Y: gl.config.Padding + cellH*float64(i/cols) + cellH/2,
		}
	}

	return positions, nil
}
