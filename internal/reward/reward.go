// Package reward holds the pure reward formulas applied to completed pickups.
package reward

import (
	"math"

	"ecopickup/internal/domain"
)

// Carbon model constants. The distance is a fixed approximation, not the real route.
const (
	BaselineEmissionPerKm  = 0.21
	OptimizedEmissionPerKm = 0.08
	EstimatedDistanceKm    = 3.0
)

const pointsPerKg = 10

var materialMultiplier = map[domain.Material]float64{
	domain.MaterialPlastic:     1,
	domain.MaterialGlass:       1.2,
	domain.MaterialPaper:       0.8,
	domain.MaterialMetal:       1.5,
	domain.MaterialElectronics: 2,
}

// Multiplier returns the green point multiplier for a material; unknown materials get 1.
func Multiplier(m domain.Material) float64 {
	if v, ok := materialMultiplier[m]; ok {
		return v
	}
	return 1
}

// EstimateCarbonSavings returns the kilograms of CO2 saved by the pickup,
// rounded to two decimals.
func EstimateCarbonSavings(p domain.Pickup) domain.CarbonReport {
	baseline := BaselineEmissionPerKm * EstimatedDistanceKm
	optimized := OptimizedEmissionPerKm * EstimatedDistanceKm
	return domain.CarbonReport{
		PickupID:          p.ID,
		EstimatedSavingKg: round2(baseline - optimized),
	}
}

// CalculateGreenPoints returns round(weight × 10 × multiplier).
func CalculateGreenPoints(material domain.Material, weightKg float64) int {
	return int(math.Round(weightKg * pointsPerKg * Multiplier(material)))
}

// Aggregate sums weight, points and carbon over completed pickups.
func Aggregate(pickups []domain.Pickup) domain.ImpactSummary {
	var s domain.ImpactSummary
	for _, p := range pickups {
		s.Pickups++
		s.TotalWeight += p.WeightKg
		s.TotalPoints += CalculateGreenPoints(p.Material, p.WeightKg)
		s.TotalCarbon += EstimateCarbonSavings(p).EstimatedSavingKg
	}
	s.TotalCarbon = round2(s.TotalCarbon)
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
