package projection

import (
	"math"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

func withDefaults(config LayoutConfig) LayoutConfig {
	d := DefaultLayoutConfig()
	if config.Width <= 0 {
		config.Width = d.Width
	}
	if config.Height <= 0 {
		config.Height = d.Height
	}
	if config.Padding < 0 {
		config.Padding = d.Padding
	}
	return config
}

// adjacency builds undirected neighbour lists restricted to known nodes, in
// link order so iterative layouts stay deterministic
func adjacency(nodes []uml.Identity, links []uml.LinkRecord) map[uml.Identity][]uml.Identity {
	adj := make(map[uml.Identity][]uml.Identity, len(nodes))
	seen := make(map[uml.LinkRecord]bool)
	for _, id := range nodes {
		adj[id] = nil
	}
	for _, l := range links {
		_, fromOK := adj[l.From]
		_, toOK := adj[l.To]
		if !fromOK || !toOK || l.From == l.To {
			continue
		}
		if seen[l] || seen[uml.LinkRecord{From: l.To, To: l.From}] {
			continue
		}
		seen[l] = true
		adj[l.From] = append(adj[l.From], l.To)
		adj[l.To] = append(adj[l.To], l.From)
	}
	return adj
}

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[uml.Identity]Position, width, height, padding float64) map[uml.Identity]Position {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY

	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[uml.Identity]Position, len(positions))
	for id, pos := range positions {
		normalized[id] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}
