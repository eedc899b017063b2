package compose

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/postcards-home/internal/domain"
)

// SubmitInput holds the user-supplied fields of a new postcard.
type SubmitInput struct {
	Message    string
	Recipients []string
	// ImageURL is a data: URL or a remote URL.
	ImageURL string
	// ImagePrompt asks the image generator for a picture when ImageURL is empty.
	ImagePrompt string
	Location    string
	Latitude    *float64
	Longitude   *float64
	// Polish asks the text collaborator to rewrite Message before storing.
	Polish bool
}

// Validate checks the fields that do not depend on configured
// collaborators and collects all errors. maxMessage is the rune cap
// applied before the emptiness check.
func (i SubmitInput) Validate(maxMessage int) error {
	errs := i.fieldErrors(maxMessage)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i SubmitInput) fieldErrors(maxMessage int) []domain.FieldError {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ImageURL) == "" && strings.TrimSpace(i.ImagePrompt) == "" {
		errs = append(errs, domain.FieldError{Field: "image", Message: "required"})
	}

	if prepareMessage(i.Message, maxMessage) == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}

	if len(domain.NormalizeRecipients(i.Recipients)) == 0 {
		errs = append(errs, domain.FieldError{Field: "recipients", Message: "at least one recipient required"})
	}

	if (i.Latitude == nil) != (i.Longitude == nil) {
		errs = append(errs, domain.FieldError{Field: "coordinates", Message: "latitude and longitude must be given together"})
	}
	if i.Latitude != nil && (*i.Latitude < -90 || *i.Latitude > 90) {
		errs = append(errs, domain.FieldError{Field: "latitude", Message: "must be in -90..90"})
	}
	if i.Longitude != nil && (*i.Longitude < -180 || *i.Longitude > 180) {
		errs = append(errs, domain.FieldError{Field: "longitude", Message: "must be in -180..180"})
	}

	return errs
}

// prepareMessage drops leading whitespace from text and cuts it to limit
// runes. Trailing whitespace is kept so a long message is stored at exactly
// limit runes.
func prepareMessage(text string, limit int) string {
	return domain.TruncateRunes(strings.TrimLeftFunc(text, unicode.IsSpace), limit)
}
