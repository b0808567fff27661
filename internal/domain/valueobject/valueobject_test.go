package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomillane/motor-decisiones/internal/domain/valueobject"
)

func TestParseClientID(t *testing.T) {
	tests := []struct {
		input    string
		wantNull bool
		want     int64
	}{
		{"53535", false, 53535},
		{"  42 ", false, 42},
		{"1234.0", false, 1234},
		{"1234.5", true, 0},
		{"abc", true, 0},
		{"", true, 0},
		{"NaN", true, 0},
		{"1e300", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id := valueobject.ParseClientID(tt.input)
			assert.Equal(t, tt.wantNull, id.IsNull())
			assert.Equal(t, tt.want, id.Int64())
		})
	}
}

func TestClientID_Matches(t *testing.T) {
	a := valueobject.NewClientID(7)
	assert.True(t, a.Matches(valueobject.NewClientID(7)))
	assert.False(t, a.Matches(valueobject.NewClientID(8)))
	assert.False(t, valueobject.NullClientID.Matches(valueobject.NullClientID))
	assert.False(t, a.Matches(valueobject.NullClientID))
}

func TestClientID_JSON(t *testing.T) {
	data, err := json.Marshal([]valueobject.ClientID{valueobject.NewClientID(9), valueobject.NullClientID})
	require.NoError(t, err)
	assert.JSONEq(t, `[9,null]`, string(data))

	var decoded []valueobject.ClientID
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.True(t, decoded[0].Matches(valueobject.NewClientID(9)))
	assert.True(t, decoded[1].IsNull())
}

func TestScore(t *testing.T) {
	assert.False(t, valueobject.NoScore.Present())
	assert.True(t, valueobject.NoScore.IsZeroValue())
	assert.True(t, valueobject.ScoreOf(0).IsZeroValue())
	assert.False(t, valueobject.ScoreOf(605).IsZeroValue())

	v := 610
	assert.Equal(t, valueobject.ScoreOf(610), valueobject.ScoreFromPtr(&v))
	assert.Equal(t, valueobject.NoScore, valueobject.ScoreFromPtr(nil))
}

func TestParseHousingStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.HousingStatus
	}{
		{"RENTADA", valueobject.HousingRented},
		{"rented", valueobject.HousingRented},
		{"PROPIA", valueobject.HousingOwned},
		{"TRANSPASO", valueobject.HousingTransfer},
		{"TRANSFER", valueobject.HousingTransfer},
		{"familiar", valueobject.HousingOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, valueobject.ParseHousingStatus(tt.input))
		})
	}
	assert.Equal(t, "RENTADA", valueobject.HousingRented.Label())
}

func TestParseCollectionsStatus(t *testing.T) {
	assert.Equal(t, valueobject.CollectionsNoContact, valueobject.ParseCollectionsStatus(" sin contacto "))
	assert.True(t, valueobject.ParseCollectionsStatus("").IsAbsent())
	assert.True(t, valueobject.ParseCollectionsStatus("Buena").IsKnown())
	assert.False(t, valueobject.ParseCollectionsStatus("PROMESA").IsKnown())
}

func TestDecision_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.Decision
		label    string
		wantErr  bool
	}{
		{"ACCEPTED", valueobject.DecisionAccepted, "Aceptado", false},
		{"REJECTED", valueobject.DecisionRejected, "Rechazado", false},
		{"NOT_APPLICABLE", valueobject.DecisionNotApplicable, "No aplica", false},
		{"MAYBE", valueobject.Decision{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := valueobject.DecisionFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(d))
			assert.Equal(t, tt.label, d.Label())
		})
	}
}

func TestPartialScore(t *testing.T) {
	p := valueobject.PointsOf(20)
	assert.True(t, p.IsNumeric())
	assert.Equal(t, 20, p.Points())
	assert.Equal(t, "20", p.Display())

	assert.Equal(t, 0, valueobject.InconsistentScore.Points())
	assert.Equal(t, "99999", valueobject.InconsistentScore.Display())
	assert.False(t, valueobject.NoHistoryScore.IsNumeric())
	assert.Equal(t, "N/A", valueobject.NullScore.Display())
}
