package valueobject

// Condition flags a data-quality situation encountered while scoring.
type Condition string

const (
	ConditionNoCreditHistory   Condition = "NO_CREDIT_HISTORY"
	ConditionDataInconsistency Condition = "DATA_INCONSISTENCY"
	ConditionUnknownCategory   Condition = "UNKNOWN_CATEGORY"
)

func (c Condition) String() string {
	return string(c)
}
