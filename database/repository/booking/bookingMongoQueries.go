// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"fmt"
	"time"

	"shotfolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByIDForOwner retrieves a booking scoped to its owning photographer.
func (r *MongoBookingRepo) GetByIDForOwner(id, photographerID string) (*models.Booking, error) {
	return r.findOne(bson.M{"id": id, "photographer_id": photographerID})
}

// GetByPortalToken retrieves the single booking matching an exact portal token.
func (r *MongoBookingRepo) GetByPortalToken(token string) (*models.Booking, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.findOne(bson.M{"portal_token": token})
}

// ListByPhotographer retrieves all bookings owned by a photographer.
func (r *MongoBookingRepo) ListByPhotographer(photographerID string) ([]models.Booking, error) {
	return r.findMany(bson.M{"photographer_id": photographerID})
}

// ListPendingDueOn retrieves bookings still awaiting payment whose due date
// equals the given date. Date comparison is a plain string match on the
// "YYYY-MM-DD" field, ignoring time of day by construction.
func (r *MongoBookingRepo) ListPendingDueOn(dueDate string) ([]models.Booking, error) {
	return r.findMany(bson.M{
		"payment_status": bson.M{"$in": bson.A{
			models.PaymentStatusPending,
			models.PaymentStatusPendingDeposit,
		}},
		"payment_due_date": dueDate,
	})
}

// ListByEventDate retrieves bookings whose event date equals the given date.
func (r *MongoBookingRepo) ListByEventDate(eventDate string) ([]models.Booking, error) {
	return r.findMany(bson.M{"event_date": eventDate})
}

// StampPreDueReminder records a pre-due reminder send. The filter refuses
// to match when a reminder was already recorded within the past 24 hours,
// so a second overlapping sweep cannot double-stamp.
func (r *MongoBookingRepo) StampPreDueReminder(id string, sentAt time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cutoff := sentAt.Add(-24 * time.Hour)
	filter := bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{"last_reminder_sent": bson.M{"$exists": false}},
			bson.M{"last_reminder_sent": nil},
			bson.M{"last_reminder_sent": bson.M{"$lt": cutoff}},
		},
	}
	update := bson.M{"$set": bson.M{
		"last_reminder_sent": sentAt,
		"updated_at":         sentAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to stamp pre-due reminder for booking %s: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}

// StampPostEventNudge records the one-shot post-event nudge. The filter
// only matches while reminder_sent_at is still unset.
func (r *MongoBookingRepo) StampPostEventNudge(id string, sentAt time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "reminder_sent_at": nil}
	update := bson.M{
		"$set": bson.M{
			"reminder_sent_at":   sentAt,
			"last_reminder_sent": sentAt,
			"updated_at":         sentAt,
		},
		"$inc": bson.M{"reminder_count": 1},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to stamp post-event nudge for booking %s: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *MongoBookingRepo) findOne(filter bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) findMany(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
