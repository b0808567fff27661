package valueobject

import "strings"

// HousingStatus describes how a new applicant occupies their home.
type HousingStatus struct {
	value string
}

var (
	HousingRented   = HousingStatus{value: "RENTED"}
	HousingOwned    = HousingStatus{value: "OWNED"}
	HousingTransfer = HousingStatus{value: "TRANSFER"}
	HousingOther    = HousingStatus{value: "OTHER"}
)

var housingAliases = map[string]HousingStatus{
	"RENTED":    HousingRented,
	"RENTADA":   HousingRented,
	"OWNED":     HousingOwned,
	"PROPIA":    HousingOwned,
	"TRANSFER":  HousingTransfer,
	"TRANSPASO": HousingTransfer,
	"TRASPASO":  HousingTransfer,
}

// ParseHousingStatus accepts the English enum names and the Spanish form
// labels. Unrecognized input maps to HousingOther.
func ParseHousingStatus(s string) HousingStatus {
	if h, ok := housingAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return h
	}
	return HousingOther
}

// String returns the enum name.
func (h HousingStatus) String() string {
	return h.value
}

// Label returns the form label shown to evaluators.
func (h HousingStatus) Label() string {
	switch h {
	case HousingRented:
		return "RENTADA"
	case HousingOwned:
		return "PROPIA"
	case HousingTransfer:
		return "TRANSPASO"
	default:
		return h.value
	}
}

// IsZero returns true if the status has not been set.
func (h HousingStatus) IsZero() bool {
	return h.value == ""
}
