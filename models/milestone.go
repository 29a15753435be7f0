package models

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Milestone status values.
const (
	MilestoneStatusPending = "pending"
	MilestoneStatusPaid    = "paid"
	MilestoneStatusOverdue = "overdue"
)

// Standard milestone names produced by the generator. The balance
// reconciliation keys its deposit double-count guard on the Deposit name.
const (
	MilestoneNameDeposit = "Deposit"
	MilestoneNameFinal   = "Final Payment"
)

// Milestone is one scheduled installment of a booking's total price.
// Amount is the net amount owed to the photographer for this installment.
type Milestone struct {
	ID         string     `bson:"id" json:"id"`
	Name       string     `bson:"name" json:"name"`
	Amount     float64    `bson:"amount" json:"amount"`
	Percentage *float64   `bson:"percentage,omitempty" json:"percentage,omitempty"`
	DueDate    string     `bson:"due_date,omitempty" json:"due_date,omitempty"` // "YYYY-MM-DD"
	Status     string     `bson:"status" json:"status"`
	PaidAt     *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	PaymentRef string     `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"` // external processor reference
}

// MilestoneList decodes defensively: rows written before itemized tracking
// may hold the milestone array as a JSON-encoded string, and individual
// malformed entries are skipped rather than failing the whole document.
type MilestoneList []Milestone

// ParseMilestones converts a raw milestone payload into a MilestoneList.
// Unparseable payloads yield an empty list, never an error.
func ParseMilestones(data []byte) MilestoneList {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	// Legacy rows hold the array serialized as a JSON string.
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		return ParseMilestones([]byte(s))
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil
	}
	out := make(MilestoneList, 0, len(raws))
	for _, r := range raws {
		var m Milestone
		if err := json.Unmarshal(r, &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (m *MilestoneList) UnmarshalJSON(data []byte) error {
	*m = ParseMilestones(data)
	return nil
}

func (m MilestoneList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]Milestone(m))
}

func (m *MilestoneList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		if s, ok := raw.StringValueOK(); ok {
			*m = ParseMilestones([]byte(s))
		}
		return nil
	case bsontype.Array:
		arr, ok := raw.ArrayOK()
		if !ok {
			return nil
		}
		elems, err := arr.Elements()
		if err != nil {
			return nil
		}
		out := make(MilestoneList, 0, len(elems))
		for _, e := range elems {
			doc, ok := e.Value().DocumentOK()
			if !ok {
				continue
			}
			var ms Milestone
			if err := bson.Unmarshal(doc, &ms); err != nil {
				continue
			}
			out = append(out, ms)
		}
		*m = out
		return nil
	default:
		*m = nil
		return nil
	}
}
