// Package search looks for random starting grids that settle into a loop.
//
// A [Searcher] repeatedly resets its [life.Game], randomizes it from a
// per-attempt seed and runs it until a cycle appears or the generation cap
// is hit. Cycles of the empty grid and loops no longer than the configured
// minimum are rejected. An accepted [Result] can be replayed into any
// [Sink], which is how the terminal renderers display the loop.
//
// Attempt n of a search seeded with s uses seed s+n, so any result can be
// reproduced from its Seed alone.
package search
