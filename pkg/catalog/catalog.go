package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"

	"agrotrack/pkg/lifecycle"
)

// SoilSheet is the workbook sheet holding per-soil duration factors.
const SoilSheet = "SoilAdjust"

var ErrUnknownCrop = errors.New("unknown crop")

// Estimator suggests a harvest date for a new culture.
type Estimator interface {
	GrowthDays(crop string) (int, bool)
	EstimateHarvest(crop string, soil lifecycle.SoilType, planted time.Time) (time.Time, error)
	Size() int
}

type cropRow struct {
	Name       string
	GrowthDays int
	Notes      string
}

type catalog struct {
	crops   map[string]cropRow // folded name -> row
	soilAdj map[lifecycle.SoilType]float64
}

var defaultCrops = []cropRow{
	{Name: "wheat", GrowthDays: 240},
	{Name: "blé", GrowthDays: 240},
	{Name: "maize", GrowthDays: 150},
	{Name: "maïs", GrowthDays: 150},
	{Name: "sunflower", GrowthDays: 120},
	{Name: "tournesol", GrowthDays: 120},
	{Name: "rapeseed", GrowthDays: 300},
	{Name: "colza", GrowthDays: 300},
	{Name: "potato", GrowthDays: 110},
	{Name: "pomme de terre", GrowthDays: 110},
	{Name: "tomato", GrowthDays: 90},
	{Name: "tomate", GrowthDays: 90},
	{Name: "carrot", GrowthDays: 80},
	{Name: "carotte", GrowthDays: 80},
	{Name: "lettuce", GrowthDays: 60},
	{Name: "laitue", GrowthDays: 60},
}

var defaultSoilAdj = map[lifecycle.SoilType]float64{
	lifecycle.SoilClay:   1.10,
	lifecycle.SoilSandy:  0.95,
	lifecycle.SoilLoamy:  1.00,
	lifecycle.SoilChalky: 1.05,
}

// Default returns the built-in catalog.
func Default() Estimator {
	return newCatalog()
}

func newCatalog() *catalog {
	c := &catalog{crops: map[string]cropRow{}, soilAdj: map[lifecycle.SoilType]float64{}}
	for _, row := range defaultCrops {
		c.crops[key(row.Name)] = row
	}
	for s, f := range defaultSoilAdj {
		c.soilAdj[s] = f
	}
	return c
}

// LoadFromFiles overlays the built-in catalog with a crop CSV and a soil
// workbook. Empty or missing paths are skipped. The returned Estimator is
// always usable; a non-nil error reports files that could not be read.
func LoadFromFiles(cropCSV, soilXLSX string) (Estimator, error) {
	c := newCatalog()
	var errs []error
	if cropCSV != "" {
		if err := c.loadCropsCSV(cropCSV); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("crop csv %s: %w", cropCSV, err))
		}
	}
	if soilXLSX != "" {
		if err := c.loadSoilXLSX(soilXLSX); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("soil xlsx %s: %w", soilXLSX, err))
		}
	}
	return c, errors.Join(errs...)
}

func (c *catalog) loadCropsCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.readCrops(f)
}

func (c *catalog) readCrops(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return err
	}

	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cName := findAny("Crop", "variety", "culture", "name")
	cDays := findAny("GrowthDays", "days", "cycle_days", "duration")
	cNote := findAny("Notes", "note", "remark")
	if cName == -1 || cDays == -1 {
		return fmt.Errorf("missing required columns, found headers %v, need at least Crop and GrowthDays", head)
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		name := get(cName)
		days, _ := strconv.Atoi(get(cDays))
		if name == "" || days <= 0 {
			continue
		}
		c.crops[key(name)] = cropRow{Name: name, GrowthDays: days, Notes: get(cNote)}
	}
	return nil
}

func (c *catalog) loadSoilXLSX(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	rows, err := x.GetRows(SoilSheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue // header
		}
		soil, err := lifecycle.ParseSoilType(row[0])
		if err != nil {
			continue
		}
		fac, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || fac <= 0 {
			continue
		}
		c.soilAdj[soil] = fac
	}
	return nil
}

func (c *catalog) GrowthDays(crop string) (int, bool) {
	row, ok := c.crops[key(crop)]
	if !ok {
		return 0, false
	}
	return row.GrowthDays, true
}

// EstimateHarvest returns planted plus the crop's growth days scaled by the
// soil factor, rounded to whole days.
func (c *catalog) EstimateHarvest(crop string, soil lifecycle.SoilType, planted time.Time) (time.Time, error) {
	days, ok := c.GrowthDays(crop)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownCrop, crop)
	}
	adj := c.soilAdj[soil]
	if adj == 0 {
		adj = 1.0
	}
	return planted.AddDate(0, 0, int(math.Round(float64(days)*adj))), nil
}

func (c *catalog) Size() int { return len(c.crops) }

func key(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
