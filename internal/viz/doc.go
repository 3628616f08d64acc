// Package viz is the terminal front end of the simulator.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: steps an engine on a display tick and draws the particles
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Recorder]: captures frames into an animated GIF
//
// # Key Bindings
//
//	Mouse - Hold the left button to push particles away from the cursor
//	Space - Pause/Resume simulation
//	R     - Reset to the initial scene
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	Q     - Quit
package viz
