package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// SequenceGenerator issues monotonically increasing numeric ids backed by a
// counters collection. FindOneAndUpdate with $inc is atomic, so concurrent
// requests never receive the same id.
type SequenceGenerator struct {
	coll *mongo.Collection
}

func NewSequenceGenerator(db *mongo.Database) *SequenceGenerator {
	return &SequenceGenerator{coll: db.Collection(countersCollection)}
}

// Next returns the next id for the named sequence, starting at 1.
func (g *SequenceGenerator) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := g.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence %q: %w", name, err)
	}
	return doc.Seq, nil
}
