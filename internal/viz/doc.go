// Package viz provides the interactive terminal front end for loop searches.
//
// The package implements a full-screen UI using the Bubble Tea framework:
//
//   - [Model]: runs the search in batches off the UI goroutine, then replays
//     the accepted loop with a stats panel and population charts
//   - [App]: preset picker that hands over to a [Model]
//   - [Canvas]: braille canvas packing eight cells per character for grids
//     wider than the terminal
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	[ ]   - Back/forward one generation
//	I     - Rewind to the initial grid
//	S     - Rewind to the cycle start
//	N     - Search for the next loop
//	B     - Toggle braille rendering
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
