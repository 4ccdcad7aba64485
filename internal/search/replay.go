package search

import (
	"context"
	"fmt"
	"time"
)

// Frame describes the game's current generation in terms of res.
func (s *Searcher) Frame(res *Result) Frame {
	gen := s.game.Generation()
	phase := -1
	if gen >= res.CycleStart && res.LoopLength > 0 {
		phase = (gen - res.CycleStart) % res.LoopLength
	}
	return Frame{
		Generation: gen,
		Phase:      phase,
		CycleStart: res.CycleStart,
		LoopLength: res.LoopLength,
		Attempt:    res.Attempt,
		Grid:       s.game.Grid(),
	}
}

// Replay rewinds to the loop of res and renders it into sink, stepping once
// per Delay. res must be the most recent result of this Searcher.
func (s *Searcher) Replay(ctx context.Context, res *Result, opts ReplayOptions, sink Sink) error {
	from := res.CycleStart
	if opts.FromInitial {
		from = 0
	}
	if !s.game.RevertTo(from) {
		return fmt.Errorf("%w: %d", ErrNotRecorded, from)
	}

	var tick <-chan time.Time
	if opts.Delay > 0 {
		ticker := time.NewTicker(opts.Delay)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; opts.Frames == 0 || n < opts.Frames; n++ {
		if err := sink.Render(s.Frame(res)); err != nil {
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		s.game.Step()
	}
	return nil
}
