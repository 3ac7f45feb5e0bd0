package model

import "time"

// Creator is the account that publishes bookable sponsorship slots.
// The ID is the auth provider's user id, so the profile row and the
// session identity always line up.
type Creator struct {
	ID             string    `json:"id" bson:"_id,omitempty" validate:"required,uuid4"`
	Email          string    `json:"email" bson:"email" validate:"required,email"`
	NewsletterName string    `json:"newsletter_name" bson:"newsletter_name" validate:"required,min=2,max=100"`
	Slug           string    `json:"slug" bson:"slug" validate:"required,min=2,max=60,slug"`
	Timezone       string    `json:"timezone" bson:"timezone" validate:"required,timezone"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// CreatorUpdate carries the editable profile fields. All are required
// on update; partial profile writes are not supported.
type CreatorUpdate struct {
	NewsletterName string `json:"newsletter_name" validate:"required,min=2,max=100"`
	Slug           string `json:"slug" validate:"required,min=2,max=60,slug"`
	Timezone       string `json:"timezone" validate:"required,timezone"`
}

// SignupRequest creates both the auth account and the profile row.
type SignupRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	NewsletterName string `json:"newsletter_name" validate:"required,min=2,max=100"`
	Slug           string `json:"slug" validate:"required,min=2,max=60,slug"`
	Timezone       string `json:"timezone" validate:"required,timezone"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PublicProfile is the subset of Creator exposed on the public booking
// page.
type PublicProfile struct {
	ID             string `json:"id" bson:"_id"`
	NewsletterName string `json:"newsletter_name" bson:"newsletter_name"`
	Timezone       string `json:"timezone" bson:"timezone"`
}
