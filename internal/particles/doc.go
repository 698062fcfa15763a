// Package particles implements the spring-mass particle system at the core
// of the simulation.
//
// The package is organised around a few types:
//
//   - [Particle]: point mass with an impulse queue and a lockable floor state
//   - [Joint]: damped spring between two particles, addressed by index
//   - [System]: the per-frame contract every particle system satisfies
//   - [Base]: default particle storage, integration and expiry
//   - [Lattice]: anchored grid of particles joined by structural and shear springs
//   - [Burst]: short-lived buoyant particles that expire through [Base.Cleanup]
//   - [Collection]: ordered set of systems driven uniformly each frame
//
// # Frame contract
//
// A lattice update zeroes accelerations, applies buoyancy, the environment
// force and every queued impulse (draining the queue), then the spring
// pairs, and finally integrates each particle with semi-implicit Euler:
//
//	vel += acc * dt
//	pos += vel * dt
//
// # Thread Safety
//
// Systems are NOT thread-safe. The driver must serialize the collision,
// update, cleanup and render passes of a frame.
package particles
