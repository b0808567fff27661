package valueobject

import "strconv"

// InconsistentSentinel is displayed in place of a bureau partial when both
// bureau and no-hit scores are set. It is never added to a total.
const InconsistentSentinel = 99999

// PartialKind distinguishes numeric contributions from sentinels.
type PartialKind int

const (
	PartialPoints PartialKind = iota
	PartialNoHistory
	PartialInconsistent
	PartialNull
)

func (k PartialKind) String() string {
	switch k {
	case PartialPoints:
		return "POINTS"
	case PartialNoHistory:
		return "NO_HISTORY"
	case PartialInconsistent:
		return "INCONSISTENT"
	case PartialNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// PartialScore is the contribution of a single rule.
type PartialScore struct {
	kind   PartialKind
	points int
}

var (
	NoHistoryScore    = PartialScore{kind: PartialNoHistory}
	InconsistentScore = PartialScore{kind: PartialInconsistent}
	NullScore         = PartialScore{kind: PartialNull}
)

// PointsOf returns a numeric partial score.
func PointsOf(n int) PartialScore {
	return PartialScore{kind: PartialPoints, points: n}
}

// Kind returns the partial kind.
func (p PartialScore) Kind() PartialKind {
	return p.kind
}

// IsNumeric reports whether the partial carries real points.
func (p PartialScore) IsNumeric() bool {
	return p.kind == PartialPoints
}

// Points returns the numeric contribution; sentinels contribute 0.
func (p PartialScore) Points() int {
	if p.kind != PartialPoints {
		return 0
	}
	return p.points
}

// Display renders the partial the way analysts see it.
func (p PartialScore) Display() string {
	switch p.kind {
	case PartialPoints:
		return strconv.Itoa(p.points)
	case PartialNoHistory:
		return "Sin historial"
	case PartialInconsistent:
		return strconv.Itoa(InconsistentSentinel)
	default:
		return "N/A"
	}
}
