package photographerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shotfolio/database"
	"shotfolio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no photographer matches the query.
var ErrNotFound = errors.New("photographer not found")

// PhotographerRepository defines methods for photographer data access.
type PhotographerRepository interface {
	// GetByID retrieves a photographer by its unique ID.
	GetByID(id string) (*models.Photographer, error)
	// GetByEmail retrieves a photographer by email address.
	GetByEmail(email string) (*models.Photographer, error)
	// GetByTokenHash retrieves a photographer by the hash of its auth token.
	GetByTokenHash(tokenHash string) (*models.Photographer, error)
	// Create inserts a new photographer record.
	Create(p *models.Photographer) error
	// Update modifies an existing photographer record.
	Update(p *models.Photographer) error
	// UpdateSetDocument applies a partial $set update to a photographer.
	UpdateSetDocument(id string, fields map[string]interface{}) error
}

// MongoPhotographerRepo implements PhotographerRepository using MongoDB.
type MongoPhotographerRepo struct {
	coll *mongo.Collection
}

// NewMongoPhotographerRepo creates a new instance of PhotographerRepository using MongoDB.
func NewMongoPhotographerRepo() PhotographerRepository {
	coll := database.MongoClient.Database("shotfolio").Collection("photographers")
	repo := &MongoPhotographerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPhotographerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "token_hash", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create photographer indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a photographer by its unique ID.
func (r *MongoPhotographerRepo) GetByID(id string) (*models.Photographer, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByEmail retrieves a photographer by email address.
func (r *MongoPhotographerRepo) GetByEmail(email string) (*models.Photographer, error) {
	return r.findOne(bson.M{"email": email})
}

// GetByTokenHash retrieves a photographer by the hash of its auth token.
func (r *MongoPhotographerRepo) GetByTokenHash(tokenHash string) (*models.Photographer, error) {
	return r.findOne(bson.M{"token_hash": tokenHash})
}

// Create inserts a new photographer document.
func (r *MongoPhotographerRepo) Create(p *models.Photographer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create photographer: %w", err)
	}
	return nil
}

// Update modifies an existing photographer document.
func (r *MongoPhotographerRepo) Update(p *models.Photographer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	filter := bson.M{"id": p.ID}
	update := bson.M{"$set": p}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update photographer with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a photographer.
func (r *MongoPhotographerRepo) UpdateSetDocument(id string, fields map[string]interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	update := bson.M{"$set": fields}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update photographer with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPhotographerRepo) findOne(filter bson.M) (*models.Photographer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Photographer
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch photographer: %w", err)
	}
	return &p, nil
}
