package domain

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "available"
	CarStatusInRent      CarStatus = "in_rent"
	CarStatusMaintenance CarStatus = "maintenance"
	CarStatusPending     CarStatus = "pending"
)

type CarCondition string

const (
	CarConditionExcellent    CarCondition = "excellent"
	CarConditionGood         CarCondition = "good"
	CarConditionSatisfactory CarCondition = "satisfactory"
	CarConditionNeedsRepair  CarCondition = "needs_repair"
)

// conditionRank orders conditions by severity. Higher is worse.
var conditionRank = map[CarCondition]int{
	CarConditionExcellent:    1,
	CarConditionGood:         2,
	CarConditionSatisfactory: 3,
	CarConditionNeedsRepair:  4,
}

// Rank returns the severity rank of the condition, or 0 for an unknown value.
func (c CarCondition) Rank() int {
	return conditionRank[c]
}

// WorseThan reports whether c is strictly more severe than other.
func (c CarCondition) WorseThan(other CarCondition) bool {
	return c.Rank() > other.Rank()
}

type Car struct {
	ID          int64        `json:"id"`
	Brand       string       `json:"brand"`
	Model       string       `json:"model"`
	Year        int          `json:"year"`
	PricePerDay int64        `json:"price_per_day"`
	Description string       `json:"description,omitempty"`
	Condition   CarCondition `json:"condition"`
	Status      CarStatus    `json:"status"`
}

// Name returns the display name used in reports and notifications.
func (c *Car) Name() string {
	return c.Brand + " " + c.Model
}
