package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"autorent-backend/internal/domain"
)

const (
	// FullTank is the fuel level assumed when the client supplied nothing
	// usable.
	FullTank = 100

	lowFuelThreshold = 50
	lowFuelPenalty   = 5000
)

// QuoteTotalPrice computes the expected rental price for the given interval:
// whole days times the per-day price, reduced by the discount percentage.
func QuoteTotalPrice(start, end time.Time, pricePerDay int64, discountPercent int) int64 {
	days := int64(RentalDays(start, end))
	total := days * pricePerDay
	if discountPercent > 0 && discountPercent <= 100 {
		total -= total * int64(discountPercent) / 100
	}
	return total
}

// ParseFuelLevel converts the client-supplied fuel reading into a percentage
// in [0, 100]. Missing or non-numeric input defaults to a full tank.
func ParseFuelLevel(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return FullTank
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return FullTank
	}
	return clampFuelLevel(level)
}

func clampFuelLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// PenaltyAssessment is the additive result of the return-time penalty rules.
type PenaltyAssessment struct {
	Amount  int64
	Reasons []string
}

// Description joins the individual penalty reasons for the Penalty record.
func (a PenaltyAssessment) Description() string {
	return strings.Join(a.Reasons, "; ")
}

// AssessReturnPenalty applies the return-time penalty rules: a flat charge
// for returning with less than half a tank, plus a damage surcharge scaled
// from the rental's total price. An assessment with Amount == 0 means no
// Penalty record should be created.
func AssessReturnPenalty(totalPrice int64, fuelLevel int, damage domain.DamageLevel) PenaltyAssessment {
	fuelLevel = clampFuelLevel(fuelLevel)

	var assessment PenaltyAssessment
	if fuelLevel < lowFuelThreshold {
		assessment.Amount += lowFuelPenalty
		assessment.Reasons = append(assessment.Reasons,
			fmt.Sprintf("Low fuel level (%d%%): %d", fuelLevel, int64(lowFuelPenalty)))
	}

	var damagePenalty int64
	switch damage {
	case domain.DamageLevelMinor:
		damagePenalty = totalPrice / 2
	case domain.DamageLevelMedium:
		damagePenalty = totalPrice
	case domain.DamageLevelSevere:
		damagePenalty = totalPrice + totalPrice/2
	}
	if damagePenalty > 0 {
		assessment.Amount += damagePenalty
		assessment.Reasons = append(assessment.Reasons,
			fmt.Sprintf("Damage (%s): %d", damage, damagePenalty))
	}

	return assessment
}
