// Package nutrition holds the pure validation and derivation rules: email
// format, BMI, calorie targets and diet food recommendations.
package nutrition

import (
	"math"
	"regexp"

	"github.com/terraincognita07/nutrismart/internal/models"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// ValidateEmail reports whether s looks like local@domain.suffix.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ComputeBMI returns weight/height² rounded to two decimals. heightM must be > 0.
func ComputeBMI(weightKg float64, heightM float64) float64 {
	return Round2(weightKg / (heightM * heightM))
}

// Round2 rounds half away from zero to two decimals.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

var calorieMultipliers = map[models.Diet]float64{
	models.DietLowCarb:     25,
	models.DietKetogenic:   27,
	models.DietHighProtein: 30,
	models.DietBulking:     35,
}

// DailyCalorieTarget is the diet multiplier times body weight. Unknown diets
// use the high-protein multiplier.
func DailyCalorieTarget(diet models.Diet, weightKg float64) float64 {
	multiplier, ok := calorieMultipliers[diet]
	if !ok {
		multiplier = calorieMultipliers[models.DietHighProtein]
	}
	return multiplier * weightKg
}

type SummaryStatus string

const (
	StatusUnder    SummaryStatus = "under"
	StatusOnTarget SummaryStatus = "on_target"
	StatusOver     SummaryStatus = "over"
)

// EvaluateCalories compares a day's total with its target using a ±10% band.
func EvaluateCalories(total float64, target float64) SummaryStatus {
	switch {
	case total < target*0.9:
		return StatusUnder
	case total > target*1.1:
		return StatusOver
	default:
		return StatusOnTarget
	}
}

// BMICategory maps a BMI value to its WHO band.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	case bmi < 35.0:
		return "obesity_1"
	case bmi < 40.0:
		return "obesity_2"
	default:
		return "obesity_3"
	}
}
