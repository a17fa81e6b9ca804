package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"wind-storage-sim/internal/config"
	"wind-storage-sim/internal/model"
)

// LoadSeriesCSV reads a prepared `hour,speed_ms,demand_kwh` file.
func LoadSeriesCSV(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Series{}, err
	}
	defer f.Close()
	return ParseSeriesCSV(f)
}

func ParseSeriesCSV(in io.Reader) (model.Series, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true

	var s model.Series
	rowNum := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Series{}, err
		}
		rowNum++
		if rowNum == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "hour") {
			continue
		}
		if len(rec) < 3 {
			return model.Series{}, fmt.Errorf("row %d: expected 3 columns, got %d", rowNum, len(rec))
		}
		speed, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return model.Series{}, fmt.Errorf("row %d: invalid speed: %w", rowNum, err)
		}
		demand, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return model.Series{}, fmt.Errorf("row %d: invalid demand: %w", rowNum, err)
		}
		hour := len(s.Speeds) + 1
		s.Speeds = append(s.Speeds, model.SpeedSample{Hour: hour, SpeedMS: speed})
		s.Demand = append(s.Demand, model.DemandSample{Hour: hour, DemandKWh: demand})
	}
	return s, nil
}

// Load reads the inputs a data config points at.
func Load(dc config.DataConfig) (model.Series, error) {
	if dc.Series != "" {
		return LoadSeriesCSV(dc.Series)
	}
	if dc.Speeds == "" || dc.Demand == "" {
		return model.Series{}, errors.New("data: either series or both speeds and demand are required")
	}
	if dc.Year == 0 {
		return model.Series{}, errors.New("data: year is required with a speeds file")
	}
	speeds, err := LoadWindSpeeds(dc.Speeds, dc.Year)
	if err != nil {
		return model.Series{}, fmt.Errorf("load speeds: %w", err)
	}
	demand, err := LoadDemandProfile(dc.Demand, dc.Households, dc.AnnualDemandKWh)
	if err != nil {
		return model.Series{}, fmt.Errorf("load demand: %w", err)
	}
	return model.Series{Speeds: speeds, Demand: demand}, nil
}
