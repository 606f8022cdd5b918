package projection

import (
	"math"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config LayoutConfig) *CircularLayout {
	return &CircularLayout{config: withDefaults(config)}
}

// ComputeLayout arranges nodes in a circle, starting at three o'clock
func (cl *CircularLayout) ComputeLayout(nodes []uml.Identity, _ []uml.LinkRecord) (map[uml.Identity]Position, error) {
	positions := make(map[uml.Identity]Position, len(nodes))

	if len(nodes) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	if len(nodes) == 1 {
		positions[nodes[0]] = Position{X: centerX, Y: centerY}
		return positions, nil
	}

	radius := math.Min(centerX, centerY) - cl.config.Padding
	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, id := range nodes {
		angle := float64(i) * angleStep
		positions[id] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
