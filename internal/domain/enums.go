package domain

// SpecimenStatus is the archive status attached to a generated specimen entry.
type SpecimenStatus string

const (
	SpecimenStatusArchived   SpecimenStatus = "ARCHIVED"
	SpecimenStatusVerified   SpecimenStatus = "VERIFIED"
	SpecimenStatusCatalogued SpecimenStatus = "CATALOGUED"
)

func (s SpecimenStatus) String() string { return string(s) }

func (s SpecimenStatus) IsValid() bool {
	switch s {
	case SpecimenStatusArchived, SpecimenStatusVerified, SpecimenStatusCatalogued:
		return true
	}
	return false
}

// SpecimenEntry is the text part of a generated naturalist observation.
type SpecimenEntry struct {
	Title       string         `json:"title"`
	Observation string         `json:"observation"`
	Coordinates string         `json:"coordinates"`
	Status      SpecimenStatus `json:"status"`
}

// Specimen is a generated archive entry: text plus image.
type Specimen struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Observation string         `json:"observation"`
	Coordinates string         `json:"coordinates"`
	Status      SpecimenStatus `json:"status"`
	ImageURL    string         `json:"imageUrl"`
	Date        string         `json:"date"`
}
