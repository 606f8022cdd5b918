package projection

import (
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// HierarchicalLayout arranges nodes in levels following link direction
type HierarchicalLayout struct {
	config LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config LayoutConfig) *HierarchicalLayout {
	return &HierarchicalLayout{config: withDefaults(config)}
}

// ComputeLayout arranges nodes hierarchically. Roots are nodes with no
// incoming link; unreachable nodes join the last level.
func (hl *HierarchicalLayout) ComputeLayout(nodes []uml.Identity, links []uml.LinkRecord) (map[uml.Identity]Position, error) {
	positions := make(map[uml.Identity]Position, len(nodes))

	if len(nodes) == 0 {
		return positions, nil
	}

	known := make(map[uml.Identity]bool, len(nodes))
	for _, id := range nodes {
		known[id] = true
	}
	outgoing := make(map[uml.Identity][]uml.Identity)
	hasIncoming := make(map[uml.Identity]bool)
	for _, l := range links {
		if !known[l.From] || !known[l.To] || l.From == l.To {
			continue
		}
		outgoing[l.From] = append(outgoing[l.From], l.To)
		hasIncoming[l.To] = true
	}

	roots := make([]uml.Identity, 0)
	for _, id := range nodes {
		if !hasIncoming[id] {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		roots = []uml.Identity{nodes[0]}
	}

	// BFS levels
	levels := make([][]uml.Identity, 0)
	visited := make(map[uml.Identity]bool)
	for _, id := range roots {
		visited[id] = true
	}
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]uml.Identity, 0)

		for _, id := range currentLevel {
			for _, to := range outgoing[id] {
				if !visited[to] {
					visited[to] = true
					nextLevel = append(nextLevel, to)
				}
			}
		}

		currentLevel = nextLevel
	}

	for _, id := range nodes {
		if !visited[id] {
			levels[len(levels)-1] = append(levels[len(levels)-1], id)
		}
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))
	levelWidth := hl.config.Width - 2*hl.config.Padding

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, id := range level {
			positions[id] = Position{X: hl.config.Padding + spacing*float64(nodeIdx+1), Y: y}
		}
	}

	return positions, nil
}
