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

// QuartersPerHour is the number of profile rows folded into one hour.
const QuartersPerHour = 4

// LoadDemandProfile reads a quarter-hour standard load profile
// (`start,end,?,fraction`) and scales it to aggregate household demand:
// the fractions of each hour are summed and multiplied by annualKWh*households.
// A trailing partial hour is dropped.
func LoadDemandProfile(path string, households, annualKWh float64) ([]model.DemandSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDemandProfile(f, households, annualKWh)
}

func ParseDemandProfile(in io.Reader, households, annualKWh float64) ([]model.DemandSample, error) {
	if households <= 0 || annualKWh <= 0 {
		return nil, errors.New("households and annual demand must be > 0")
	}
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out []model.DemandSample
	sum := 0.0
	count := 0
	rowNum := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rowNum++
		if len(rec) < 4 {
			continue
		}
		raw := strings.TrimSpace(rec[3])
		fraction, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if rowNum == 1 {
				// header
				continue
			}
			return nil, fmt.Errorf("row %d: invalid fraction %q: %w", rowNum, raw, err)
		}
		sum += fraction
		count++
		if count == QuartersPerHour {
			out = append(out, model.DemandSample{
				Hour:      len(out) + 1,
				DemandKWh: sum * annualKWh * households,
			})
			sum = 0
			count = 0
		}
	}
	return out, nil
}
