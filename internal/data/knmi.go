package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"wind-storage-sim/internal/model"
)

// LoadWindSpeeds reads a KNMI hourly station export and returns the speeds of
// the given year in m/s.
//
// Rows look like `STN,YYYYMMDD,HH,DD,FH,...` where FH is the hourly mean wind
// speed in 0.1 m/s. Comment lines start with '#'.
func LoadWindSpeeds(path string, year int) ([]model.SpeedSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWindSpeeds(f, year)
}

func ParseWindSpeeds(in io.Reader, year int) ([]model.SpeedSample, error) {
	r := csv.NewReader(in)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	prefix := strconv.Itoa(year)
	var out []model.SpeedSample
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) < 5 {
			continue
		}
		date := strings.TrimSpace(rec[1])
		if !strings.HasPrefix(date, prefix) {
			continue
		}
		raw := strings.TrimSpace(rec[4])
		fh, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid FH %q: %w", line, raw, err)
		}
		out = append(out, model.SpeedSample{
			Hour:    len(out) + 1,
			SpeedMS: float64(fh) / 10,
		})
	}
	return out, nil
}
