// Package viz draws physworld scenarios in the terminal.
//
//   - [Model]: Bubble Tea live view that steps a [sim.System] and draws
//     its spheres on a [Canvas]
//   - [NewInteractiveApp]: scenario picker in front of the live view
//   - [Summary], [TrajectoryPlot], [EnergyPlot]: static reports of a
//     finished run
//
// The canvas is braille based, so a cell holds 2x4 dots and the x-y plane is
// projected with y pointing up.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the scenario from t=0
//	+/-   - Double or halve steps per frame
//	F     - Refit the view to the bodies
//	T     - Cycle color themes
//	[ ]   - Time travel (rewind/forward)
//	?     - Show help overlay
package viz
