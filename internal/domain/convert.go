package domain

const kgToLb = 2.2046226218

// Weight units accepted by the stats endpoint.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitKg && to == UnitLb {
		return v * kgToLb
	}
	if from == UnitLb && to == UnitKg {
		return v / kgToLb
	}
	return v
}

// ValidWeightUnit reports whether unit is one of the supported weight units.
func ValidWeightUnit(unit string) bool {
	return unit == UnitKg || unit == UnitLb
}
