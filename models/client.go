package models

import "time"

// Client is the counterparty on a booking. Contact info is used for
// reminder delivery and portal links.
type Client struct {
	ID             string    `bson:"id" json:"id"`
	PhotographerID string    `bson:"photographer_id" json:"photographer_id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
