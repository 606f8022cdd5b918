package projection

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
)

// ForceDirectedLayout implements force-directed graph layout. Placement is
// deterministic for a given seed and input order.
type ForceDirectedLayout struct {
	config LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config LayoutConfig) *ForceDirectedLayout {
	config = withDefaults(config)
	if config.Iterations <= 0 {
		config.Iterations = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using the Fruchterman-Reingold model
func (fdl *ForceDirectedLayout) ComputeLayout(nodes []uml.Identity, links []uml.LinkRecord) (map[uml.Identity]Position, error) {
	if len(nodes) == 0 {
		return make(map[uml.Identity]Position), nil
	}

	cfg := fdl.config
	if len(nodes) == 1 {
		return map[uml.Identity]Position{
			nodes[0]: {X: cfg.Width / 2, Y: cfg.Height / 2},
		}, nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	positions := make(map[uml.Identity]Position, len(nodes))
	for _, id := range nodes {
		positions[id] = Position{
			X: rng.Float64()*(cfg.Width-2*cfg.Padding) + cfg.Padding,
			Y: rng.Float64()*(cfg.Height-2*cfg.Padding) + cfg.Padding,
		}
	}

	adj := adjacency(nodes, links)

	k := math.Sqrt((cfg.Width * cfg.Height) / float64(len(nodes))) // optimal distance
	temperature := cfg.Width / 10.0

	for iter := 0; iter < cfg.Iterations; iter++ {
		forces := make(map[uml.Identity]Position, len(nodes))

		// Repulsion between all pairs
		for i, a := range nodes {
			for _, b := range nodes[i+1:] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Max(math.Sqrt(dx*dx+dy*dy), 0.01)

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		// Attraction along links
		for _, a := range nodes {
			for _, b := range adj[a] {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[a] = Position{
					X: forces[a].X - (dx/dist)*force,
					Y: forces[a].Y - (dy/dist)*force,
				}
			}
		}

		cool := 1.0 - float64(iter)/float64(cfg.Iterations)
		for _, id := range nodes {
			fx, fy := forces[id].X, forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				step := math.Min(force, temperature) * cool
				positions[id] = Position{
					X: positions[id].X + (fx/force)*step,
					Y: positions[id].Y + (fy/force)*step,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, cfg.Width, cfg.Height, cfg.Padding), nil
}
