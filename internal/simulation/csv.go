package simulation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteTraceCSV writes one row per simulated hour.
func WriteTraceCSV(path string, trace []TraceRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeTraceCSV(f, trace)
}

func EncodeTraceCSV(out io.Writer, trace []TraceRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"hour",
		"speed_ms",
		"output_kw",
		"demand_kwh",
		"storage_start_kwh",
		"storage_after_kwh",
		"shortage_kwh",
		"curtailment_kwh",
		"outcome",
		"turbine_availability",
		"storage_credit",
		"curtailment_loss",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range trace {
		row := []string{
			strconv.Itoa(r.Hour),
			fmtFloat(r.SpeedMS),
			fmtFloat(r.OutputKW),
			fmtFloat(r.DemandKWh),
			fmtFloat(r.StorageStartKWh),
			fmtFloat(r.StorageAfterKWh),
			fmtFloat(r.ShortageKWh),
			fmtFloat(r.CurtailmentKWh),
			r.Outcome.String(),
			fmtFloat(r.Policy.TurbineAvailability),
			fmtFloat(r.Policy.StorageCredit),
			fmtFloat(r.Policy.CurtailmentLoss),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteEventsCSV writes shortage and curtailment events as kind,hour,amount_kwh.
func WriteEventsCSV(path string, stats Statistics) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"kind", "hour", "amount_kwh"}); err != nil {
		return err
	}
	write := func(kind string, events []Event) error {
		for _, ev := range events {
			if err := w.Write([]string{kind, strconv.Itoa(ev.Hour), fmtFloat(ev.AmountKWh)}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write("shortage", stats.ShortageEvents); err != nil {
		return err
	}
	if err := write("curtailment", stats.CurtailmentEvents); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
