package enums

import "fmt"

// ProductUnit describes how a product is measured and sold. Weight-based
// units allow fractional cart quantities.
type ProductUnit string

const (
	ProductUnitPiece    ProductUnit = "piece"
	ProductUnitGram     ProductUnit = "gram"
	ProductUnitKilogram ProductUnit = "kilogram"
	ProductUnitLiter    ProductUnit = "liter"
	ProductUnitMeter    ProductUnit = "meter"
)

var validProductUnits = []ProductUnit{
	ProductUnitPiece,
	ProductUnitGram,
	ProductUnitKilogram,
	ProductUnitLiter,
	ProductUnitMeter,
}

// String implements fmt.Stringer.
func (p ProductUnit) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductUnit.
func (p ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
