// Package launch loads the launch-record dataset and exposes it as an
// immutable, concurrency-safe table.
package launch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

// Column headers recognised in the input file.
const (
	ColumnFlightNumber    = "Flight Number"
	ColumnSite            = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnBoosterVersion  = "Booster Version"
	ColumnBoosterCategory = "Booster Version Category"
	ColumnClass           = "class"
)

var requiredColumns = []string{ColumnSite, ColumnPayloadMass, ColumnBoosterCategory, ColumnClass}

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedRow is returned when a data row cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
	// ErrEmpty is returned when the file has a header but no data rows.
	ErrEmpty = errors.New("dataset has no records")
)

// Record is one launch.
type Record struct {
	FlightNumber    int     `json:"flight_number,omitempty"`
	Site            string  `json:"site"`
	PayloadMassKg   float64 `json:"payload_mass_kg"`
	BoosterVersion  string  `json:"booster_version,omitempty"`
	BoosterCategory string  `json:"booster_category"`
	Class           int     `json:"class"`
}

// Success reports whether the launch outcome class is 1.
func (r Record) Success() bool {
	return r.Class == 1
}

// Dataset is the loaded table plus the values derived from it at load time.
// It is never mutated after construction.
type Dataset struct {
	records    []Record
	sites      []string
	minPayload float64
	maxPayload float64
}

// New builds a Dataset from records. The slice is copied.
func New(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	ds := &Dataset{
		records:    slices.Clone(records),
		minPayload: math.Inf(1),
		maxPayload: math.Inf(-1),
	}
	seen := make(map[string]bool)
	for _, r := range ds.records {
		if !seen[r.Site] {
			seen[r.Site] = true
			ds.sites = append(ds.sites, r.Site)
		}
		ds.minPayload = math.Min(ds.minPayload, r.PayloadMassKg)
		ds.maxPayload = math.Max(ds.maxPayload, r.PayloadMassKg)
	}
	return ds, nil
}

// Load reads a CSV dataset from path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a CSV dataset. Columns are matched by header name and any
// column not listed above is ignored.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		// Spreadsheet exports sometimes carry a BOM on the first cell.
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}
		records = append(records, rec)
	}

	return New(records)
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec Record
	rec.Site = field(ColumnSite)
	rec.BoosterVersion = field(ColumnBoosterVersion)
	rec.BoosterCategory = field(ColumnBoosterCategory)

	mass, err := strconv.ParseFloat(field(ColumnPayloadMass), 64)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnPayloadMass, err)
	}
	rec.PayloadMassKg = mass

	class, err := strconv.Atoi(field(ColumnClass))
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnClass, err)
	}
	if class != 0 && class != 1 {
		return Record{}, fmt.Errorf("%s: expected 0 or 1, got %d", ColumnClass, class)
	}
	rec.Class = class

	if s := field(ColumnFlightNumber); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Record{}, fmt.Errorf("%s: %w", ColumnFlightNumber, err)
		}
		rec.FlightNumber = n
	}
	return rec, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Each calls fn for every record in file order without copying the table.
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Sites returns the distinct launch sites in first-appearance order.
func (d *Dataset) Sites() []string {
	return slices.Clone(d.sites)
}

// SiteOrder returns the first-appearance position of site, or -1.
func (d *Dataset) SiteOrder(site string) int {
	return slices.Index(d.sites, site)
}

// MinPayload returns the smallest payload mass in the dataset.
func (d *Dataset) MinPayload() float64 {
	return d.minPayload
}

// MaxPayload returns the largest payload mass in the dataset.
func (d *Dataset) MaxPayload() float64 {
	return d.maxPayload
}
