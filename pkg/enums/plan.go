package enums

import "fmt"

// Plan identifies a purchasable headshot package.
type Plan string

const (
	PlanBasic        Plan = "basic"
	PlanProfessional Plan = "professional"
	PlanExecutive    Plan = "executive"
)

var validPlans = []Plan{
	PlanBasic,
	PlanProfessional,
	PlanExecutive,
}

// String implements fmt.Stringer.
func (p Plan) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Plan.
func (p Plan) IsValid() bool {
	for _, candidate := range validPlans {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlan converts raw input into a Plan.
func ParsePlan(value string) (Plan, error) {
	for _, candidate := range validPlans {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan %q", value)
}
