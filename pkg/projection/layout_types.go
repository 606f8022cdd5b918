package projection

import (
	"fmt"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Padding    float64 // Padding from edges
	Columns    int     // Grid columns; 0 picks a square-ish grid
	Iterations int     // Number of iterations for iterative algorithms
	Seed       int64   // Seed for the force layout's initial placement
}

// DefaultLayoutConfig returns the canvas size used when none is configured
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:   1200,
		Height:  800,
		Padding: 50,
	}
}

// Layout places class nodes. Links are only used as hints.
type Layout interface {
	ComputeLayout(nodes []uml.Identity, links []uml.LinkRecord) (map[uml.Identity]Position, error)
}

// Layout kinds accepted by NewLayout
const (
	LayoutGrid         = "grid"
	LayoutCircular     = "circular"
	LayoutHierarchical = "hierarchical"
	LayoutForce        = "force"
)

// LayoutKinds lists every accepted layout kind
var LayoutKinds = []string{LayoutGrid, LayoutCircular, LayoutHierarchical, LayoutForce}

// NewLayout builds a layout by kind. An empty kind selects the grid.
func NewLayout(kind string, config LayoutConfig) (Layout, error) {
	switch kind {
	case "", LayoutGrid:
		return NewGridLayout(config), nil
	case LayoutCircular:
		return NewCircularLayout(config), nil
	case LayoutHierarchical:
		return NewHierarchicalLayout(config), nil
	case LayoutForce:
		return NewForceDirectedLayout(config), nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}
