// Package life provides the Game of Life engine used by the loop search.
//
// The package defines the grid and simulation primitives:
//
//   - [Grid]: fixed-size toroidal field of boolean cells
//   - [State]: a generation index paired with a grid snapshot
//   - [History]: the record of visited states used for cycle detection
//   - [Game]: owns the current state and history, steps and rewinds
//
// # Example
//
//	g := life.New(10, 10)
//	g.Randomize(life.NewRNG(42))
//	if start, ok := g.RunUntilCycle(1000); ok {
//	    period := g.Generation() - start
//	    g.RevertTo(start)
//	}
//
// # Thread Safety
//
// Game and Grid instances are NOT thread-safe. Hand copies from [Game.Grid]
// or [Game.States] to other goroutines.
package life
