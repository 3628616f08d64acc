// Package body defines the circular rigid body simulated by the physics core.
//
// A [Particle] stores its current and previous position instead of an
// explicit velocity. Velocity is always derived as
// Position - PreviousPosition (position Verlet), so anything that moves
// Position without touching PreviousPosition implicitly changes the
// velocity seen on the next integration step.
//
// Mass and radius are fixed at construction and are strictly positive.
package body
