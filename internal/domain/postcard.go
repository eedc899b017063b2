package domain

import (
	"slices"
	"strings"
	"time"
)

// BroadcastRecipient is the recipient value that addresses every household member.
const BroadcastRecipient = "Family"

// DateLayout renders a postcard date as "02 JAN 06" after upper-casing.
const DateLayout = "02 Jan 06"

// Seed record shown before anything has been sent.
const (
	SeedPostcardID = "init-1"
	SeedSender     = "Julian"
	SeedMessage    = "Welcome to our new home archive. Every photo is a shared memory."
	SeedLocation   = "Archive HQ"
	SeedDate       = "01 JAN 25"
	SeedImageURL   = "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?auto=format&fit=crop&q=80&w=1200"
)

// SeedRecipients is the recipient list of the seed record.
var SeedRecipients = []string{BroadcastRecipient, "Tracey", "Francis", "Lucy", "Orla", "Ruby"}

// SeedPostcard returns the seed record, dated one day before now.
func SeedPostcard(now time.Time) Postcard {
	return Postcard{
		ID:         SeedPostcardID,
		Sender:     SeedSender,
		Recipients: append([]string(nil), SeedRecipients...),
		Message:    SeedMessage,
		Location:   SeedLocation,
		ImageURL:   SeedImageURL,
		Timestamp:  now.Add(-24 * time.Hour).UnixMilli(),
		Date:       SeedDate,
	}
}

// Postcard is a single dispatched postcard. It is never modified after creation.
type Postcard struct {
	ID         string   `json:"id"`
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
	Location   string   `json:"location"`
	ImageURL   string   `json:"imageUrl"`
	Timestamp  int64    `json:"timestamp"`
	Date       string   `json:"date"`
}

// AddressedTo reports whether the postcard reaches name, either directly
// or through the broadcast recipient.
func (p Postcard) AddressedTo(name string) bool {
	return slices.Contains(p.Recipients, name) || slices.Contains(p.Recipients, BroadcastRecipient)
}

// IsBroadcast reports whether the postcard was sent to the whole family.
func (p Postcard) IsBroadcast() bool {
	return slices.Contains(p.Recipients, BroadcastRecipient)
}

// FormatDate renders t in the postcard display format, e.g. "14 OCT 26".
func FormatDate(t time.Time) string {
	return strings.ToUpper(t.Format(DateLayout))
}

// WidgetData is the flat payload polled by the home-screen widget.
type WidgetData struct {
	ImageURL string `json:"imageUrl"`
	Sender   string `json:"sender"`
	Message  string `json:"message"`
	Location string `json:"location"`
	Date     string `json:"date"`
}

// FallbackWidgetData is served when no postcard reaches the recipient.
func FallbackWidgetData() WidgetData {
	return WidgetData{
		ImageURL: SeedImageURL,
		Sender:   BroadcastRecipient,
		Message:  "New memories await your viewing.",
		Location: SeedLocation,
		Date:     SeedDate,
	}
}

// WidgetDataFrom projects the display fields of p.
func WidgetDataFrom(p Postcard) WidgetData {
	return WidgetData{
		ImageURL: p.ImageURL,
		Sender:   p.Sender,
		Message:  p.Message,
		Location: p.Location,
		Date:     p.Date,
	}
}

// Household is the configured member list. It drives presentation only;
// no archive invariant depends on it.
type Household struct {
	Members         []string
	DefaultIdentity string
}

// Everyone returns the broadcast marker followed by every member.
func (h Household) Everyone() []string {
	all := make([]string, 0, len(h.Members)+1)
	all = append(all, BroadcastRecipient)
	return append(all, h.Members...)
}
