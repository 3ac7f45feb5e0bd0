package model

import "time"

const PaymentStatusPaid = "paid"

// Booking is a sponsor's paid reservation against one slot. Rows are
// only inserted after the payment provider reports the session as paid,
// so PaymentStatus is always "paid" in practice.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SlotID          string    `json:"slot_id" bson:"slot_id" validate:"required,mongodb"`
	CreatorID       string    `json:"creator_id" bson:"creator_id" validate:"required,uuid4"`
	SponsorName     string    `json:"sponsor_name" bson:"sponsor_name" validate:"required,min=2,max=100"`
	SponsorEmail    string    `json:"sponsor_email" bson:"sponsor_email" validate:"required,email"`
	WebsiteURL      string    `json:"website_url" bson:"website_url" validate:"required,url"`
	AdCopy          string    `json:"ad_copy" bson:"ad_copy" validate:"required,min=1,max=1000"`
	CreativeFileURL string    `json:"creative_file_url,omitempty" bson:"creative_file_url,omitempty" validate:"omitempty,url"`
	PaymentStatus   string    `json:"payment_status" bson:"payment_status" validate:"required,oneof=paid"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingView joins a booking with the slot date/status and the slot
// type name for the creator dashboard.
type BookingView struct {
	Booking      `bson:",inline"`
	SlotDate     string `json:"slot_date" bson:"slot_date"`
	SlotStatus   string `json:"slot_status" bson:"slot_status"`
	SlotTypeName string `json:"slot_type_name" bson:"slot_type_name"`
}

// ReservationRequest is a sponsor's intake submission from the public
// booking form. The optional creative file travels alongside it, not in
// it.
type ReservationRequest struct {
	SponsorName  string `json:"sponsor_name" validate:"required,min=2,max=100"`
	SponsorEmail string `json:"sponsor_email" validate:"required,email"`
	WebsiteURL   string `json:"website_url" validate:"required,url"`
	AdCopy       string `json:"ad_copy" validate:"required,min=1,max=1000"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotTypeID   string `json:"slot_type_id" validate:"required,mongodb"`
	CreatorSlug  string `json:"creator_slug" validate:"required,min=2,max=60"`
}

// CheckoutRef is what intake hands back to the sponsor: the provider's
// session id and the hosted payment page to redirect to.
type CheckoutRef struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreativeUpload carries an optional creative file submitted with the
// intake form.
type CreativeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BookingPage is everything the public booking form needs for one
// creator: the public profile, the priced offerings and the open
// inventory.
type BookingPage struct {
	Profile   PublicProfile `json:"profile"`
	SlotTypes []*SlotType   `json:"slot_types"`
	Slots     []*SlotView   `json:"slots"`
}
