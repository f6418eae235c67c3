package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/georegions-server/internal/model"
)

var _ model.RegionStore = (*RegionRepository)(nil)

type RegionRepository struct {
	coll    *mongo.Collection
	journal *journal
}

func NewRegionRepository(coll *mongo.Collection) *RegionRepository {
	return &RegionRepository{
		coll: coll,
	}
}

func (r *RegionRepository) Create(ctx context.Context, region model.Region) (model.Region, error) {
	doc := newRegionDoc(region)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return model.Region{}, classify("create region", err)
	}

	r.journal.record(func(ctx context.Context) error {
		_, err := r.coll.DeleteOne(ctx, bson.M{"_id": doc.ID})
		return err
	})
	return doc.region(), nil
}

func (r *RegionRepository) GetByID(ctx context.Context, id string) (model.Region, error) {
	doc, err := r.find(ctx, id)
	if err != nil {
		return model.Region{}, classify("get region by id", err)
	}

	return doc.region(), nil
}

func (r *RegionRepository) List(ctx context.Context) ([]model.Region, error) {
	return r.query(ctx, "list regions", bson.M{}, sortByCreation())
}

func (r *RegionRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Region, error) {
	return r.query(ctx, "list regions by owner", bson.M{"user": ownerID}, sortByCreation())
}

func (r *RegionRepository) Update(ctx context.Context, region model.Region) (model.Region, error) {
	var previous regionDoc
	if r.journal != nil {
		var err error
		if previous, err = r.find(ctx, region.ID); err != nil {
			return model.Region{}, classify("get region by id", err)
		}
	}

	doc := newRegionDoc(region)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return model.Region{}, classify("update region", err)
	}
	if res.MatchedCount == 0 {
		return model.Region{}, model.ErrNotFound
	}

	r.journal.record(func(ctx context.Context) error {
		_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": previous.ID}, previous)
		return err
	})
	return doc.region(), nil
}

func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	var previous regionDoc
	if r.journal != nil {
		var err error
		if previous, err = r.find(ctx, id); err != nil {
			return classify("get region by id", err)
		}
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify("delete region", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}

	r.journal.record(func(ctx context.Context) error {
		_, err := r.coll.InsertOne(ctx, previous)
		return err
	})
	return nil
}

// FindContaining matches regions whose area intersects p: polygons that
// contain it and point areas equal to it.
func (r *RegionRepository) FindContaining(ctx context.Context, p model.Point) ([]model.Region, error) {
	filter := bson.M{
		"area": bson.M{
			"$geoIntersects": bson.M{"$geometry": newPointDoc(p)},
		},
	}
	return r.query(ctx, "find regions containing point", filter, sortByCreation())
}

// FindWithinDistance relies on $near, which returns documents nearest first.
func (r *RegionRepository) FindWithinDistance(ctx context.Context, p model.Point, maxMeters float64, ownerID string) ([]model.Region, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    newPointDoc(p),
				"$maxDistance": maxMeters,
			},
		},
	}
	if ownerID != "" {
		filter["user"] = ownerID
	}
	return r.query(ctx, "find regions within distance", filter, options.Find())
}

func (r *RegionRepository) query(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]model.Region, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, classify(op, err)
	}

	var docs []regionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify(op, err)
	}

	regions := make([]model.Region, 0, len(docs))
	for _, d := range docs {
		regions = append(regions, d.region())
	}
	return regions, nil
}

func (r *RegionRepository) find(ctx context.Context, id string) (regionDoc, error) {
	var doc regionDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	return doc, err
}

func sortByCreation() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
}
