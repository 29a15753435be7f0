package models

import "time"

// Photographer is the tenant account owning bookings and clients.
type Photographer struct {
	ID           string `bson:"id" json:"id"`
	Name         string `bson:"name" json:"name"`
	BusinessName string `bson:"business_name,omitempty" json:"business_name,omitempty"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	TokenHash    string `bson:"token_hash,omitempty" json:"-"`

	// AutoRemindersEnabled gates the post-event balance nudge sweep.
	AutoRemindersEnabled bool `bson:"auto_reminders_enabled" json:"auto_reminders_enabled"`

	// StripeAccountID is the connected account receiving booking payouts.
	StripeAccountID string `bson:"stripe_account_id,omitempty" json:"stripe_account_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
