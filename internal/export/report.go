package export

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/san-kum/lifeloop/internal/search"
)

type Report struct {
	Attempt     int                `json:"attempt"`
	Seed        uint64             `json:"seed"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	CycleStart  int                `json:"cycle_start"`
	DetectedAt  int                `json:"detected_at"`
	LoopLength  int                `json:"loop_length"`
	Found       time.Time          `json:"found"`
	Initial     []string           `json:"initial"`
	Loop        [][]string         `json:"loop"`
	Populations []int              `json:"populations"`
	Metrics     map[string]float64 `json:"metrics"`
}

func NewReport(res *search.Result) Report {
	loop := make([][]string, len(res.Loop))
	for i, g := range res.Loop {
		loop[i] = g.Rows()
	}
	return Report{
		Attempt:     res.Attempt,
		Seed:        res.Seed,
		Width:       res.Width,
		Height:      res.Height,
		CycleStart:  res.CycleStart,
		DetectedAt:  res.DetectedAt,
		LoopLength:  res.LoopLength,
		Found:       time.Now(),
		Initial:     res.Initial.Rows(),
		Loop:        loop,
		Populations: res.Populations,
		Metrics:     res.Metrics,
	}
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes r to path, replacing any existing file.
func SaveJSON(path string, r Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, r); err != nil {
		return err
	}
	return file.Close()
}
