// Package physics is the particle kernel: collision resolution, Verlet
// integration, boundary clamping and the interactive force field.
//
//   - [Resolve]: pushes two overlapping particles apart symmetrically
//   - [Integrator]: position Verlet step with gravity, clamp and force reset
//   - [World]: one simulation step over the whole collection
//   - [ForceField]: inverse-square repulsion from an external point
//
// # Example
//
//	ps, _ := scene.Build(scene.Default())
//	w, _ := physics.NewWorld(physics.DefaultParams(), ps)
//	for !done {
//	    w.Advance(1.0 / 1000)
//	}
//
// # Known approximations
//
// The collision pass is a single relaxation sweep over all O(n²) pairs.
// Clusters of three or more mutually overlapping particles are not fully
// separated in one step and converge over successive frames. There is no
// broad phase beyond the per-pair axis-aligned rejection, which is fine
// for the ~100 body scenes this package targets.
//
// A World is not safe for concurrent use.
package physics
