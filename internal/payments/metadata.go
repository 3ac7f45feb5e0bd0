package payments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metadata keys carried on the checkout session. Everything a booking
// needs must survive the round trip through the provider as strings.
const (
	metaSponsorName     = "sponsor_name"
	metaSponsorEmail    = "sponsor_email"
	metaWebsiteURL      = "website_url"
	metaAdCopy          = "ad_copy"
	metaDate            = "date"
	metaSlotTypeID      = "slot_type_id"
	metaCreatorSlug     = "creator_slug"
	metaCreativeFileURL = "creative_file_url"
	metaSlotID          = "slot_id"
	metaCreatorID       = "creator_id"
)

// CheckoutMetadata is the typed form of the provider's string-to-string
// metadata mapping. It is built once at intake and parsed back with
// full validation when the payment confirmation callback fires, so a
// tampered or truncated mapping fails loudly instead of producing a
// half-formed booking.
type CheckoutMetadata struct {
	SponsorName     string
	SponsorEmail    string
	WebsiteURL      string
	AdCopy          string
	Date            string
	SlotTypeID      string
	CreatorSlug     string
	CreativeFileURL string
	SlotID          string
	CreatorID       string
}

func (m CheckoutMetadata) ToMap() map[string]string {
	return map[string]string{
		metaSponsorName:     m.SponsorName,
		metaSponsorEmail:    m.SponsorEmail,
		metaWebsiteURL:      m.WebsiteURL,
		metaAdCopy:          m.AdCopy,
		metaDate:            m.Date,
		metaSlotTypeID:      m.SlotTypeID,
		metaCreatorSlug:     m.CreatorSlug,
		metaCreativeFileURL: m.CreativeFileURL,
		metaSlotID:          m.SlotID,
		metaCreatorID:       m.CreatorID,
	}
}

// ParseMetadata rebuilds and validates the typed metadata from a
// retrieved session. CreativeFileURL is the only optional field.
func ParseMetadata(raw map[string]string) (*CheckoutMetadata, error) {
	if raw == nil {
		return nil, fmt.Errorf("session carries no metadata")
	}

	m := &CheckoutMetadata{
		SponsorName:     raw[metaSponsorName],
		SponsorEmail:    raw[metaSponsorEmail],
		WebsiteURL:      raw[metaWebsiteURL],
		AdCopy:          raw[metaAdCopy],
		Date:            raw[metaDate],
		SlotTypeID:      raw[metaSlotTypeID],
		CreatorSlug:     raw[metaCreatorSlug],
		CreativeFileURL: raw[metaCreativeFileURL],
		SlotID:          raw[metaSlotID],
		CreatorID:       raw[metaCreatorID],
	}

	required := map[string]string{
		metaSponsorName:  m.SponsorName,
		metaSponsorEmail: m.SponsorEmail,
		metaWebsiteURL:   m.WebsiteURL,
		metaAdCopy:       m.AdCopy,
		metaCreatorSlug:  m.CreatorSlug,
	}
	for key, value := range required {
		if value == "" {
			return nil, fmt.Errorf("metadata field %s is missing", key)
		}
	}

	if _, err := time.Parse("2006-01-02", m.Date); err != nil {
		return nil, fmt.Errorf("metadata field %s is not a valid date: %q", metaDate, m.Date)
	}
	if _, err := primitive.ObjectIDFromHex(m.SlotID); err != nil {
		return nil, fmt.Errorf("metadata field %s is not a valid id: %q", metaSlotID, m.SlotID)
	}
	if _, err := primitive.ObjectIDFromHex(m.SlotTypeID); err != nil {
		return nil, fmt.Errorf("metadata field %s is not a valid id: %q", metaSlotTypeID, m.SlotTypeID)
	}
	if _, err := uuid.Parse(m.CreatorID); err != nil {
		return nil, fmt.Errorf("metadata field %s is not a valid id: %q", metaCreatorID, m.CreatorID)
	}

	return m, nil
}
