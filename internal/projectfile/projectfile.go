// Package projectfile reads and writes the portable JSON project format:
//
//	{
//	  "capex_items":   [{id, name, volume, unit, price}, ...],
//	  "opex_cash_in":  [...],
//	  "opex_cash_out": [...],
//	  "project_years": 5,
//	  "discount_rate": 12.0,
//	  "default_data_loaded": false,
//	  "last_save": "2024-01-01T00:00:00Z"
//	}
//
// Growth rates are never part of the file.
package projectfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/google/uuid"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"
)

// Status describes how a project was obtained by Load or DecodeLenient.
type Status string

const (
	StatusLoaded   Status = "loaded"
	StatusRepaired Status = "repaired"
	StatusMissing  Status = "missing"
	StatusCorrupt  Status = "corrupt"
)

// Number is a JSON number that also accepts numeric strings.
// Values that cannot be read decode to NaN; non-finite values encode as 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(f)
			return nil
		}
	}
	*n = Number(math.NaN())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return json.Marshal(f)
}

// Item is a line item as stored in the file.
type Item struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Volume *Number `json:"volume"`
	Unit   string  `json:"unit"`
	Price  *Number `json:"price"`
}

// File is the on-disk document.
type File struct {
	CapexItems        []Item     `json:"capex_items"`
	CashIn            []Item     `json:"opex_cash_in"`
	CashOut           []Item     `json:"opex_cash_out"`
	ProjectYears      *Number    `json:"project_years"`
	DiscountRate      *Number    `json:"discount_rate"`
	DefaultDataLoaded bool       `json:"default_data_loaded"`
	LastSave          *time.Time `json:"last_save,omitempty"`
}

// Empty returns a project with no items and the default parameters.
func Empty() model.Project {
	return model.Project{
		Settings: model.ProjectSettings{
			HorizonYears:    model.DefaultHorizonYears,
			DiscountRatePct: model.DefaultDiscountRatePct,
		},
		CapitalItems: []model.LineItem{},
		InflowItems:  []model.LineItem{},
		OutflowItems: []model.LineItem{},
	}
}

// Decode parses a project document. It fails only when data is not valid JSON
// of the expected shape; unreadable numbers inside items become NaN so the
// valuation engine reports them as defaulted.
func Decode(data []byte) (model.Project, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return model.Project{}, fmt.Errorf("failed to decode project file: %w", err)
	}
	return f.project(), nil
}

// DecodeLenient decodes data, repairing malformed JSON once before giving up.
// It never fails: unreadable input yields Empty() with StatusCorrupt.
func DecodeLenient(data []byte) (model.Project, Status) {
	if p, err := Decode(data); err == nil {
		return p, StatusLoaded
	}

	repaired, err := jsonrepair.RepairJSON(string(data))
	if err == nil {
		if p, err := Decode([]byte(repaired)); err == nil {
			return p, StatusRepaired
		}
	}

	return Empty(), StatusCorrupt
}

// Load reads a project file from disk. A missing file yields Empty() with
// StatusMissing and no error. Read failures other than a missing file are
// returned alongside Empty() and StatusCorrupt.
func Load(path string) (model.Project, Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), StatusMissing, nil
		}
		return Empty(), StatusCorrupt, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	p, status := DecodeLenient(data)
	return p, status, nil
}

// Encode writes p as an indented project document stamped with savedAt.
func Encode(w io.Writer, p model.Project, savedAt time.Time) error {
	saved := savedAt.UTC()
	years := Number(p.Settings.HorizonYears)
	rate := Number(p.Settings.DiscountRatePct)

	f := File{
		CapexItems:        fromItems(p.CapitalItems),
		CashIn:            fromItems(p.InflowItems),
		CashOut:           fromItems(p.OutflowItems),
		ProjectYears:      &years,
		DiscountRate:      &rate,
		DefaultDataLoaded: p.Settings.DefaultDataLoaded,
		LastSave:          &saved,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode project file: %w", err)
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(p model.Project, savedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, p, savedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes p to path through a temporary file in the same directory so a
// failed write never leaves a truncated project behind.
func Save(path string, p model.Project, savedAt time.Time) error {
	data, err := Marshal(p, savedAt)
	if err != nil {
		return err
	}
	return WriteAtomic(path, data)
}

// WriteAtomic writes data to path via a temporary file and rename.
func WriteAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (f File) project() model.Project {
	seen := make(map[string]bool)
	p := Empty()
	p.CapitalItems = toItems(f.CapexItems, seen)
	p.InflowItems = toItems(f.CashIn, seen)
	p.OutflowItems = toItems(f.CashOut, seen)
	p.Settings.DefaultDataLoaded = f.DefaultDataLoaded

	// Out-of-range parameters fall back to the defaults.
	if years, ok := f.ProjectYears.finite(); ok && years >= model.MinHorizonYears && years < model.MaxHorizonYears+1 {
		p.Settings.HorizonYears = int(years)
	}
	if rate, ok := f.DiscountRate.finite(); ok && rate >= model.MinDiscountRatePct && rate <= model.MaxDiscountRatePct {
		p.Settings.DiscountRatePct = rate
	}
	if f.LastSave != nil {
		p.Settings.UpdatedAt = f.LastSave.UTC()
	}
	return p
}

func (n *Number) finite() (float64, bool) {
	if n == nil {
		return 0, false
	}
	f := float64(*n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (n *Number) value() float64 {
	if n == nil {
		return math.NaN()
	}
	return float64(*n)
}

// toItems converts file items in order. Missing IDs and IDs already in seen
// are replaced with fresh ones, so IDs stay unique across all collections.
func toItems(items []Item, seen map[string]bool) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for i, it := range items {
		id := it.ID
		if id == "" || seen[id] {
			id = uuid.New().String()
		}
		seen[id] = true
		out = append(out, model.LineItem{
			ID:        id,
			Name:      it.Name,
			Quantity:  it.Volume.value(),
			Unit:      it.Unit,
			UnitPrice: it.Price.value(),
			Position:  i,
		})
	}
	return out
}

func fromItems(items []model.LineItem) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		volume := Number(it.Quantity)
		price := Number(it.UnitPrice)
		out = append(out, Item{
			ID:     it.ID,
			Name:   it.Name,
			Volume: &volume,
			Unit:   it.Unit,
			Price:  &price,
		})
	}
	return out
}
