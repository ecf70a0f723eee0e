package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luksua/API-Repaso/internal/core/domain"
)

const propertiesCollection = "properties"

const propertiesSequence = "properties"

type PropertyRepository struct {
	coll *mongo.Collection
	seq  *SequenceGenerator
}

func NewPropertyRepository(db *mongo.Database, seq *SequenceGenerator) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(propertiesCollection), seq: seq}
}

// Insert persists a new property, assigning it the next numeric id.
func (r *PropertyRepository) Insert(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, propertiesSequence)
	if err != nil {
		return err
	}
	p.ID = id

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Property
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return &p, nil
}

// Save replaces the stored document (last-write-wins).
func (r *PropertyRepository) Save(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// ListNewestFirst returns every property ordered by creation time descending.
func (r *PropertyRepository) ListNewestFirst(ctx context.Context) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cur.Close(ctx)

	var props []*domain.Property
	for cur.Next(ctx) {
		var p domain.Property
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		props = append(props, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return props, nil
}

// AggregateStats groups one owner's properties by status in a single
// aggregation pass. The rollup is always computed from the live record set.
func (r *PropertyRepository) AggregateStats(ctx context.Context, ownerID int64) (*domain.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
			"rent":  bson.M{"$sum": "$monthly_rent"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cur.Close(ctx)

	stats := &domain.Stats{}
	for cur.Next(ctx) {
		var group struct {
			Status string  `bson:"_id"`
			Count  int64   `bson:"count"`
			Rent   float64 `bson:"rent"`
		}
		if err := cur.Decode(&group); err != nil {
			return nil, fmt.Errorf("decode stats group: %w", err)
		}

		stats.Total += group.Count
		switch domain.PropertyStatus(group.Status) {
		case domain.StatusDisponible:
			stats.Disponibles = group.Count
		case domain.StatusArrendado:
			stats.Arrendadas = group.Count
			stats.IngresosMensuales = group.Rent
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

// EnsureIndexes creates necessary indexes on the properties collection.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
