// Package viz provides the terminal viewer for the seaweed scene.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset picker that launches the viewer
//   - [Model]: live viewer stepping the scene every 25ms
//   - [Canvas]: colored Braille canvas, 2x4 sub-pixels per cell
//   - [Viewport]: world-to-canvas projection used as the scene render target
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Reset the scene
//	W/A/S/D - Thrust the player
//	F       - Stop the player
//	O       - Orbit
//	B       - Release bubbles at the player
//	T       - Cycle color themes
//	?       - Show help overlay
//
// A left click plants a new lattice at the pointer; a right click releases
// bubbles there.
package viz
