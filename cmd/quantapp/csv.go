package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Nikhil170404/Quantapp/internal/core"
)

// loadCandles reads OHLCV candles from a CSV file with the header
// date,open,high,low,close,volume and dates in YYYY-MM-DD form.
func loadCandles(path string) ([]core.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening candle file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading candle file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("candle file %s has no data rows", path)
	}

	candles := make([]core.Candle, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 6 {
			return nil, fmt.Errorf("row %d: expected 6 columns, got %d", i+2, len(row))
		}
		ts, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+2, row[0], err)
		}
		fields := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			fields[j-1], err = strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid number %q: %w", i+2, row[j], err)
			}
		}
		candles = append(candles, core.Candle{
			Time:   ts,
			Open:   fields[0],
			High:   fields[1],
			Low:    fields[2],
			Close:  fields[3],
			Volume: fields[4],
		})
	}
	return candles, nil
}
