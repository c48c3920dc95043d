// Package catalog provides the read-only emission factor table used to turn a
// logged activity type into a carbon value.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/greenops"
)

//go:embed default_factors.yaml
var defaultFactors []byte

// ErrInvalidCatalog indicates a catalog document that failed validation.
var ErrInvalidCatalog = errors.New("invalid emission factor catalog")

// Entry is a catalog row with its lookup key.
type Entry struct {
	Category footprint.Category
	Type     string
	footprint.EmissionFactor
}

// Catalog maps (category, type) to an emission factor. It is never mutated
// after construction and is safe for concurrent reads.
type Catalog struct {
	factors map[footprint.Category]map[string]footprint.EmissionFactor
}

// document is the YAML shape: category -> type -> factor.
type document map[string]map[string]footprint.EmissionFactor

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultFactors)
	if err != nil {
		// The embedded table is covered by tests.
		panic(fmt.Sprintf("embedded emission factors: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c := &Catalog{factors: make(map[footprint.Category]map[string]footprint.EmissionFactor)}
	for rawCat, types := range doc {
		cat, err := footprint.ParseCategory(rawCat)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		for rawType, factor := range types {
			typ := strings.ToLower(strings.TrimSpace(rawType))
			if typ == "" {
				return nil, fmt.Errorf("%w: empty activity type in %s", ErrInvalidCatalog, cat)
			}
			if math.IsNaN(factor.Value) || math.IsInf(factor.Value, 0) {
				return nil, fmt.Errorf("%w: %s/%s has a non-finite value", ErrInvalidCatalog, cat, typ)
			}
			factor, err = normalizeFactor(factor)
			if err != nil {
				return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidCatalog, cat, typ, err)
			}
			if c.factors[cat] == nil {
				c.factors[cat] = make(map[string]footprint.EmissionFactor)
			}
			c.factors[cat][typ] = factor
		}
	}
	return c, nil
}

// normalizeFactor converts a factor to kilograms. The unit is a carbon mass
// optionally followed by "/<per>", e.g. "g CO2/trip" or "kg CO2e/meal".
// An empty unit means kilograms.
func normalizeFactor(f footprint.EmissionFactor) (footprint.EmissionFactor, error) {
	mass, per, hasPer := strings.Cut(f.Unit, "/")
	massUnit := strings.ReplaceAll(mass, " ", "")
	if !greenops.IsRecognizedUnit(massUnit) {
		return f, fmt.Errorf("unsupported unit %q", f.Unit)
	}
	kg, err := greenops.NormalizeToKg(f.Value, massUnit)
	if err != nil {
		return f, err
	}
	f.Value = kg
	switch {
	case hasPer:
		f.Unit = kgUnit + "/" + strings.TrimSpace(per)
	case f.Unit != "":
		f.Unit = kgUnit
	}
	return f, nil
}

// kgUnit is the mass unit every catalog value is stored in.
const kgUnit = "kg CO2"

// Lookup returns the factor for (category, activityType). Types are matched
// case-insensitively.
func (c *Catalog) Lookup(category footprint.Category, activityType string) (footprint.EmissionFactor, bool) {
	f, ok := c.factors[category][strings.ToLower(strings.TrimSpace(activityType))]
	return f, ok
}

// Types returns the activity types of a category in ascending order.
func (c *Catalog) Types(category footprint.Category) []string {
	types := make([]string, 0, len(c.factors[category]))
	for t := range c.factors[category] {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// List returns every entry ordered by category (transport, food, energy) then type.
func (c *Catalog) List() []Entry {
	var entries []Entry
	for _, cat := range footprint.Categories() {
		for _, t := range c.Types(cat) {
			entries = append(entries, Entry{
				Category:       cat,
				Type:           t,
				EmissionFactor: c.factors[cat][t],
			})
		}
	}
	return entries
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	n := 0
	for _, types := range c.factors {
		n += len(types)
	}
	return n
}
