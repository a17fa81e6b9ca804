package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"wind-storage-sim/internal/api/models"
	"wind-storage-sim/internal/config"

	"github.com/gin-gonic/gin"
)

// TurbineDir returns the turbine preset directory: TURBINE_DIR, or
// examples/turbines under the working directory.
func TurbineDir() string {
	dir := os.Getenv("TURBINE_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "turbines")
		} else {
			dir = "./examples/turbines"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

// TurbineHandler handles turbine preset requests
type TurbineHandler struct {
	turbineDir string
}

// NewTurbineHandler creates a new turbine handler
func NewTurbineHandler(turbineDir string) *TurbineHandler {
	log.Printf("TurbineHandler: Using turbine directory: %s", turbineDir)
	return &TurbineHandler{turbineDir: turbineDir}
}

// ListTurbines handles GET /api/v1/turbines
func (h *TurbineHandler) ListTurbines(c *gin.Context) {
	turbines := []models.TurbineInfo{}

	entries, err := os.ReadDir(h.turbineDir)
	if err != nil {
		log.Printf("TurbineHandler: Failed to read turbine directory %s: %v", h.turbineDir, err)
		c.JSON(http.StatusOK, gin.H{"turbines": turbines})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.turbineDir, entry.Name())
		info, err := loadTurbineInfo(path, entry.Name())
		if err != nil {
			log.Printf("TurbineHandler: Failed to load turbine file %s: %v", path, err)
			continue
		}
		turbines = append(turbines, *info)
	}

	log.Printf("TurbineHandler: Returning %d turbines", len(turbines))
	c.JSON(http.StatusOK, gin.H{"turbines": turbines})
}

func loadTurbineInfo(path, filename string) (*models.TurbineInfo, error) {
	t, err := config.LoadTurbineFile(path)
	if err != nil {
		return nil, err
	}

	// "enercon_e82.yaml" -> "enercon_e82", the value turbine_file expects
	id := strings.TrimSuffix(filename, ".yaml")

	name := t.Name
	if name == "" {
		name = id
	}

	return &models.TurbineInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.TurbineSpecs{
			SweptAreaM2: t.SweptAreaM2,
			Efficiency:  t.Efficiency,
			Count:       t.Count,
		},
	}, nil
}
