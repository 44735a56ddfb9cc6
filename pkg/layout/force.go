package layout

import (
	"math/rand/v2"

	"github.com/mbertsch/graphplace/pkg/geom"
)

// minDistance floors the pairwise distance used in force math so two
// coincident nodes produce a large finite push instead of NaN or Inf.
const minDistance = 0.01

// ForceConfig configures the spring-electrical simulation: Coulomb-like
// repulsion between all node pairs plus Hooke attraction along links, with a
// multiplicative cooling schedule capping per-iteration displacement.
//
// Every node pair is evaluated each iteration, so a run costs O(n²) per
// iteration; graphs beyond a few thousand nodes get slow.
type ForceConfig struct {
	// Iterations is the number of simulation steps. Zero steps leave the
	// input positions untouched apart from the final centering.
	Iterations int
	// SpringLength is the ideal link length; links longer than this pull
	// their endpoints together, shorter ones push them apart.
	SpringLength float64
	// SpringStiffness scales the attractive force along links.
	SpringStiffness float64
	// Repulsion scales the pairwise repulsive force (divided by distance²).
	Repulsion float64
	// Temperature is the initial per-iteration displacement ceiling.
	Temperature float64
	// Cooling multiplies the temperature after every iteration; values in
	// (0,1) shrink later corrections and make the simulation converge.
	Cooling float64
	// Randomize scatters initial positions uniformly within a square of
	// side Spread before simulating. Locked nodes are not scattered.
	Randomize bool
	// Seed drives the random scatter, making randomized runs reproducible.
	Seed uint64
	// Spread is the side length of the randomization square.
	Spread float64
}

// DefaultForceConfig returns the force-directed configuration used when the
// caller does not override any tunables.
func DefaultForceConfig() ForceConfig {
	return ForceConfig{
		Iterations:      300,
		SpringLength:    100,
		SpringStiffness: 0.1,
		Repulsion:       10000,
		Temperature:     100,
		Cooling:         0.95,
		Seed:            42,
		Spread:          400,
	}
}

func applyForce(g *Graph, nodes []*Node, cfg ForceConfig) {
	if cfg.Randomize {
		rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
		half := cfg.Spread / 2
		for _, n := range nodes {
			if n.Locked {
				continue
			}
			n.SetCenter(geom.Pt(
				rnd.Float64()*cfg.Spread-half,
				rnd.Float64()*cfg.Spread-half,
			))
		}
	}

	edges := g.edges()
	force := make([]geom.Point, len(nodes))
	anyLocked := false
	for _, n := range nodes {
		if n.Locked {
			anyLocked = true
			break
		}
	}

	temperature := cfg.Temperature
	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range force {
			force[i] = geom.Point{}
		}

		// Repulsion over all node pairs.
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				dir, dist := separation(nodes[i].Center(), nodes[j].Center())
				push := dir.Scale(cfg.Repulsion / (dist * dist))
				force[i] = force[i].Sub(push)
				force[j] = force[j].Add(push)
			}
		}

		// Attraction along links. Positive displacement from the ideal
		// length pulls the endpoints together, negative pushes them apart.
		for _, e := range edges {
			dir, dist := separation(nodes[e.from].Center(), nodes[e.to].Center())
			pull := dir.Scale(cfg.SpringStiffness * (dist - cfg.SpringLength))
			force[e.from] = force[e.from].Add(pull)
			force[e.to] = force[e.to].Sub(pull)
		}

		for i, n := range nodes {
			if n.Locked {
				continue
			}
			disp := force[i]
			if m := disp.Magnitude(); m > temperature {
				disp = disp.Scale(temperature / m)
			}
			n.Pos = n.Pos.Add(disp)
		}

		temperature *= cfg.Cooling
	}

	// Centering would drag pinned nodes along, so an anchored graph keeps
	// its frame of reference instead.
	if !anyLocked {
		centerAtOrigin(nodes)
	}
}

// separation returns the unit vector from p toward q and their distance,
// floored at minDistance. Coincident points fall back to a fixed direction
// so the result stays deterministic and finite.
func separation(p, q geom.Point) (geom.Point, float64) {
	delta := q.Sub(p)
	dist := delta.Magnitude()
	if dist < minDistance {
		return geom.Pt(1, 0), minDistance
	}
	return delta.Scale(1 / dist), dist
}
