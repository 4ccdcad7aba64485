package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/lifeloop/internal/search"
)

// WritePopulationsCSV writes one row per recorded generation with its live
// cell count and whether it lies inside the loop.
func WritePopulationsCSV(w io.Writer, res *search.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"generation", "population", "in_loop"}); err != nil {
		return err
	}
	for gen, pop := range res.Populations {
		row := []string{
			strconv.Itoa(gen),
			strconv.Itoa(pop),
			strconv.FormatBool(gen >= res.CycleStart),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
