package valueobject

import "fmt"

// Decision is the outcome of a scoring pipeline.
type Decision struct {
	value string
}

var (
	DecisionAccepted      = Decision{value: "ACCEPTED"}
	DecisionRejected      = Decision{value: "REJECTED"}
	DecisionNotApplicable = Decision{value: "NOT_APPLICABLE"}
)

// DecisionFromString reconstructs a decision from its string representation.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "ACCEPTED":
		return DecisionAccepted, nil
	case "REJECTED":
		return DecisionRejected, nil
	case "NOT_APPLICABLE":
		return DecisionNotApplicable, nil
	default:
		return Decision{}, fmt.Errorf("invalid decision: %s", s)
	}
}

// String returns the string representation.
func (d Decision) String() string {
	return d.value
}

// Label returns the label shown to credit analysts.
func (d Decision) Label() string {
	switch d {
	case DecisionAccepted:
		return "Aceptado"
	case DecisionRejected:
		return "Rechazado"
	case DecisionNotApplicable:
		return "No aplica"
	default:
		return ""
	}
}

// IsZero returns true if the decision has not been set.
func (d Decision) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another Decision.
func (d Decision) Equal(other Decision) bool {
	return d.value == other.value
}

// IsAccepted returns true if the decision is ACCEPTED.
func (d Decision) IsAccepted() bool {
	return d.value == "ACCEPTED"
}
