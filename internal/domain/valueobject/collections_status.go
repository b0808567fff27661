package valueobject

import "strings"

// CollectionsStatus is the latest collections-management tag for a client.
// The zero value means the collections table has no row for the client.
type CollectionsStatus struct {
	value string
}

var (
	CollectionsExcellent = CollectionsStatus{value: "EXCELENTE"}
	CollectionsGood      = CollectionsStatus{value: "BUENA"}
	CollectionsBad       = CollectionsStatus{value: "MALA"}
	CollectionsNoContact = CollectionsStatus{value: "SIN CONTACTO"}
	CollectionsNoRecord  = CollectionsStatus{value: "SIN GESTION"}
)

// ParseCollectionsStatus normalizes a raw tag. Blank input is absent.
// Tags outside the vocabulary are preserved so they can be reported.
func ParseCollectionsStatus(raw string) CollectionsStatus {
	return CollectionsStatus{value: strings.ToUpper(strings.TrimSpace(raw))}
}

func (s CollectionsStatus) String() string {
	return s.value
}

// IsAbsent reports whether no tag was recorded.
func (s CollectionsStatus) IsAbsent() bool {
	return s.value == ""
}

// IsKnown reports whether the tag belongs to the fixed vocabulary.
func (s CollectionsStatus) IsKnown() bool {
	switch s {
	case CollectionsExcellent, CollectionsGood, CollectionsBad, CollectionsNoContact, CollectionsNoRecord:
		return true
	}
	return false
}
