package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-storage-sim/internal/config"
)

const knmiSample = `BRON: KONINKLIJK NEDERLANDS METEOROLOGISCH INSTITUUT (KNMI)
# STN,YYYYMMDD,   HH,   DD,   FH,   FF
  280,20181231,   24,  240,   50,   60
  280,20190101,    1,  250,   62,   70
  280,20190101,    2,  250,    0,   10
  280,20190101,    3,  260,  105,  110
  280,20200101,    1,  260,   40,   40
`

func TestParseWindSpeedsFiltersYear(t *testing.T) {
	got, err := ParseWindSpeeds(strings.NewReader(knmiSample), 2019)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Hour)
	assert.InDelta(t, 6.2, got[0].SpeedMS, 1e-9)
	assert.Equal(t, 0.0, got[1].SpeedMS)
	assert.InDelta(t, 10.5, got[2].SpeedMS, 1e-9)
	assert.Equal(t, 3, got[2].Hour)
}

func TestParseWindSpeedsBadValue(t *testing.T) {
	_, err := ParseWindSpeeds(strings.NewReader("280,20190101,1,250,x\n"), 2019)
	assert.Error(t, err)
}

func TestParseDemandProfileFoldsQuarters(t *testing.T) {
	in := `start,end,kind,fraction
00:00,00:15,E1A,0.00001
00:15,00:30,E1A,0.00002
00:30,00:45,E1A,0.00003
00:45,01:00,E1A,0.00004
01:00,01:15,E1A,0.00001
01:15,01:30,E1A,0.00001
01:30,01:45,E1A,0.00001
01:45,02:00,E1A,0.00001
02:00,02:15,E1A,0.00005
`
	got, err := ParseDemandProfile(strings.NewReader(in), 2985, 2832)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.InDelta(t, 0.0001*2832*2985, got[0].DemandKWh, 1e-6)
	assert.InDelta(t, 0.00004*2832*2985, got[1].DemandKWh, 1e-6)
	assert.Equal(t, 2, got[1].Hour)
}

func TestParseDemandProfileRejectsBadScale(t *testing.T) {
	_, err := ParseDemandProfile(strings.NewReader(""), 0, 2832)
	assert.Error(t, err)
}

func TestParseSeriesCSV(t *testing.T) {
	s, err := ParseSeriesCSV(strings.NewReader("hour,speed_ms,demand_kwh\n1,5.5,1000\n2,0,1200\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 5.5, s.Speeds[0].SpeedMS)
	assert.Equal(t, 1200.0, s.Demand[1].DemandKWh)

	_, err = ParseSeriesCSV(strings.NewReader("1,abc,1000\n"))
	assert.Error(t, err)
}

func TestLoadFromConfig(t *testing.T) {
	dir := t.TempDir()
	speeds := filepath.Join(dir, "speeds.txt")
	demand := filepath.Join(dir, "demand.csv")
	require.NoError(t, os.WriteFile(speeds, []byte(knmiSample), 0o644))
	require.NoError(t, os.WriteFile(demand, []byte("a,b,c,0.25\na,b,c,0.25\na,b,c,0.25\na,b,c,0.25\n"), 0o644))

	s, err := Load(config.DataConfig{Speeds: speeds, Demand: demand, Year: 2019, Households: 2, AnnualDemandKWh: 10})
	require.NoError(t, err)
	assert.Len(t, s.Speeds, 3)
	assert.Len(t, s.Demand, 1)
	assert.Equal(t, 1, s.Len())
	assert.InDelta(t, 20, s.Demand[0].DemandKWh, 1e-9)

	_, err = Load(config.DataConfig{Speeds: speeds})
	assert.Error(t, err)

	_, err = Load(config.DataConfig{Speeds: speeds, Demand: demand, Households: 2, AnnualDemandKWh: 10})
	assert.Error(t, err)
}
