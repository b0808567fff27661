package valueobject

import "strconv"

// Score is an optional bureau or no-hit score as entered by the evaluator.
type Score struct {
	value   int
	present bool
}

// NoScore marks an absent score.
var NoScore = Score{}

// ScoreOf wraps a present score.
func ScoreOf(v int) Score {
	return Score{value: v, present: true}
}

// ScoreFromPtr converts an optional transport value.
func ScoreFromPtr(v *int) Score {
	if v == nil {
		return NoScore
	}
	return ScoreOf(*v)
}

// Present reports whether a value was supplied.
func (s Score) Present() bool {
	return s.present
}

// Value returns the score. It is 0 when absent.
func (s Score) Value() int {
	return s.value
}

// IsZeroValue reports whether the score is absent or exactly 0.
func (s Score) IsZeroValue() bool {
	return !s.present || s.value == 0
}

func (s Score) String() string {
	if !s.present {
		return "absent"
	}
	return strconv.Itoa(s.value)
}
