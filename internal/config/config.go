package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wind-storage-sim/internal/forecast"
	"wind-storage-sim/internal/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the on-disk configuration shape (YAML). The HTTP API accepts the
// same shape as JSON.
type Config struct {
	// Optional: load turbine parameters from a separate YAML (e.g. examples/turbines/*.yaml).
	// If both TurbineFile and Turbine are provided, Turbine overrides TurbineFile.
	TurbineFile string         `yaml:"turbine_file" json:"turbine_file,omitempty"`
	Turbine     TurbineConfig  `yaml:"turbine" json:"turbine"`
	Storage     StorageConfig  `yaml:"storage" json:"storage"`
	Forecast    ForecastConfig `yaml:"forecast" json:"forecast"`
	Strategy    StrategyConfig `yaml:"strategy" json:"strategy"`
	Data        DataConfig     `yaml:"data" json:"-"`
}

type TurbineConfig struct {
	Name        string  `yaml:"name" json:"name,omitempty"`
	AirDensity  float64 `yaml:"air_density" json:"air_density" validate:"gte=0"`
	SweptAreaM2 float64 `yaml:"swept_area_m2" json:"swept_area_m2" validate:"gte=0"`
	Efficiency  float64 `yaml:"efficiency" json:"efficiency" validate:"gte=0,lte=1"`
	Count       int     `yaml:"count" json:"count" validate:"gte=0"`
}

type StorageConfig struct {
	MaxCapacityKWh float64 `yaml:"max_capacity_kwh" json:"max_capacity_kwh" validate:"gt=0"`
	// InitialKWh defaults to MaxCapacityKWh (start full) when omitted.
	InitialKWh             *float64 `yaml:"initial_kwh" json:"initial_kwh,omitempty" validate:"omitempty,gte=0"`
	FuelCellFactor         float64  `yaml:"fuel_cell_factor" json:"fuel_cell_factor,omitempty" validate:"gte=0"`
	ElectrolyserEfficiency float64  `yaml:"electrolyser_efficiency" json:"electrolyser_efficiency,omitempty" validate:"gte=0,lte=1"`
	ElectrolyserLimit      float64  `yaml:"electrolyser_limit" json:"electrolyser_limit,omitempty" validate:"gte=0"`
	ElectrolyserDivisor    float64  `yaml:"electrolyser_divisor" json:"electrolyser_divisor,omitempty" validate:"gte=0"`
}

type ForecastConfig struct {
	// Seed makes forecasts reproducible. Omit for a time-based seed.
	Seed *int64 `yaml:"seed" json:"seed,omitempty"`
	// Bands are the uncertainty bands of the 48h, 168h and 336h horizons.
	Bands         []float64 `yaml:"bands" json:"bands,omitempty" validate:"omitempty,len=3,dive,gte=0,lt=1"`
	StorageCredit float64   `yaml:"storage_credit" json:"storage_credit,omitempty" validate:"gte=0,lte=1"`
}

type StrategyConfig struct {
	Name string `yaml:"name" json:"name" validate:"required,oneof=forecast baseline"`
}

// DataConfig points the CLI at its inputs. Either Series, or Speeds and
// Demand, must be set.
type DataConfig struct {
	Series          string  `yaml:"series"`
	Speeds          string  `yaml:"speeds"`
	Demand          string  `yaml:"demand"`
	Year            int     `yaml:"year"`
	Households      float64 `yaml:"households"`
	AnnualDemandKWh float64 `yaml:"annual_demand_kwh"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if c.TurbineFile != "" {
		loaded, err := loadTurbineFile(resolve(dir, c.TurbineFile))
		if err != nil {
			return nil, err
		}
		c.Turbine = MergeTurbine(loaded, c.Turbine)
	}
	c.Data.Series = resolveOptional(dir, c.Data.Series)
	c.Data.Speeds = resolveOptional(dir, c.Data.Speeds)
	c.Data.Demand = resolveOptional(dir, c.Data.Demand)
	return &c, nil
}

// ApplyDefaults fills unset parameters with the reference plant: four
// turbines, a fuel cell drawing twice the deficit, a 70% electrolyser.
// MaxCapacityKWh has no default.
func (c *Config) ApplyDefaults() {
	t := model.DefaultTurbineParams()
	if c.Turbine.AirDensity == 0 {
		c.Turbine.AirDensity = t.AirDensity
	}
	if c.Turbine.SweptAreaM2 == 0 {
		c.Turbine.SweptAreaM2 = t.SweptArea
	}
	if c.Turbine.Efficiency == 0 {
		c.Turbine.Efficiency = t.Efficiency
	}
	if c.Turbine.Count == 0 {
		c.Turbine.Count = t.Count
	}

	s := model.DefaultStorageParams(c.Storage.MaxCapacityKWh)
	if c.Storage.InitialKWh == nil {
		full := c.Storage.MaxCapacityKWh
		c.Storage.InitialKWh = &full
	}
	if c.Storage.FuelCellFactor == 0 {
		c.Storage.FuelCellFactor = s.FuelCellFactor
	}
	if c.Storage.ElectrolyserEfficiency == 0 {
		c.Storage.ElectrolyserEfficiency = s.ElectrolyserEfficiency
	}
	if c.Storage.ElectrolyserLimit == 0 {
		c.Storage.ElectrolyserLimit = s.ElectrolyserLimit
	}
	if c.Storage.ElectrolyserDivisor == 0 {
		c.Storage.ElectrolyserDivisor = s.ElectrolyserDivisor
	}

	if len(c.Forecast.Bands) == 0 {
		for _, h := range forecast.DefaultHorizons() {
			c.Forecast.Bands = append(c.Forecast.Bands, h.Band)
		}
	}
	if c.Forecast.StorageCredit == 0 {
		c.Forecast.StorageCredit = forecast.DefaultStorageCredit
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "forecast"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	if err := c.Turbine.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("turbine config invalid: %w", err)
	}
	// Validate storage params by constructing a model.Storage.
	if _, err := model.NewStorage(c.Storage.ToModelParams(), c.Storage.Initial()); err != nil {
		return fmt.Errorf("storage config invalid: %w", err)
	}
	return nil
}

func (t TurbineConfig) ToModelParams() model.TurbineParams {
	return model.TurbineParams{
		AirDensity: t.AirDensity,
		SweptArea:  t.SweptAreaM2,
		Efficiency: t.Efficiency,
		Count:      t.Count,
	}
}

func (s StorageConfig) ToModelParams() model.StorageParams {
	return model.StorageParams{
		MaxCapacityKWh:         s.MaxCapacityKWh,
		FuelCellFactor:         s.FuelCellFactor,
		ElectrolyserEfficiency: s.ElectrolyserEfficiency,
		ElectrolyserLimit:      s.ElectrolyserLimit,
		ElectrolyserDivisor:    s.ElectrolyserDivisor,
	}
}

// Initial is the starting charge; full capacity when unset.
func (s StorageConfig) Initial() float64 {
	if s.InitialKWh == nil {
		return s.MaxCapacityKWh
	}
	return *s.InitialKWh
}

// ResolveSeed returns the configured seed, or a time-based one.
func (f ForecastConfig) ResolveSeed() int64 {
	if f.Seed != nil {
		return *f.Seed
	}
	return time.Now().UnixNano()
}

// ForecastParams builds forecast engine params for the configured plant.
func (c *Config) ForecastParams() forecast.Params {
	var bands [3]float64
	copy(bands[:], c.Forecast.Bands)
	return forecast.Params{
		Turbine:       c.Turbine.ToModelParams(),
		Storage:       c.Storage.ToModelParams(),
		Horizons:      forecast.HorizonsWithBands(bands),
		StorageCredit: c.Forecast.StorageCredit,
	}
}

type turbineFileWrapper struct {
	Turbine TurbineConfig `yaml:"turbine"`
}

func loadTurbineFile(path string) (TurbineConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TurbineConfig{}, err
	}
	var w turbineFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return TurbineConfig{}, err
	}
	return w.Turbine, nil
}

// LoadTurbineFile reads a turbine preset (a YAML document with a `turbine:` key).
func LoadTurbineFile(path string) (TurbineConfig, error) {
	return loadTurbineFile(path)
}

// MergeTurbine overlays non-zero fields from override onto base.
// This is used when loading a turbine file and then applying overrides from the request.
func MergeTurbine(base, override TurbineConfig) TurbineConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.AirDensity != 0 {
		out.AirDensity = override.AirDensity
	}
	if override.SweptAreaM2 != 0 {
		out.SweptAreaM2 = override.SweptAreaM2
	}
	if override.Efficiency != 0 {
		out.Efficiency = override.Efficiency
	}
	if override.Count != 0 {
		out.Count = override.Count
	}
	return out
}

// resolve prefers interpreting relative paths as relative to the config file
// directory, but falls back to the provided path (relative to cwd) if that
// doesn't exist.
func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	cand := filepath.Join(dir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

func resolveOptional(dir, p string) string {
	if p == "" {
		return ""
	}
	return resolve(dir, p)
}
