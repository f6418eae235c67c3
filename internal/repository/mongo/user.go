package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/georegions-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	coll    *mongo.Collection
	journal *journal
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{
		coll: coll,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	doc := newUserDoc(user)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return model.User{}, classify("create user", err)
	}

	r.journal.record(func(ctx context.Context) error {
		_, err := r.coll.DeleteOne(ctx, bson.M{"_id": doc.ID})
		return err
	})
	return doc.user(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	doc, err := r.find(ctx, id)
	if err != nil {
		return model.User{}, classify("get user by id", err)
	}

	return doc.user(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify("list users", err)
	}

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify("decode users", err)
	}

	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.user())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	var previous userDoc
	if r.journal != nil {
		var err error
		if previous, err = r.find(ctx, user.ID); err != nil {
			return model.User{}, classify("get user by id", err)
		}
	}

	doc := newUserDoc(user)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return model.User{}, classify("update user", err)
	}
	if res.MatchedCount == 0 {
		return model.User{}, model.ErrNotFound
	}

	r.journal.record(func(ctx context.Context) error {
		_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": previous.ID}, previous)
		return err
	})
	return doc.user(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	var previous userDoc
	if r.journal != nil {
		var err error
		if previous, err = r.find(ctx, id); err != nil {
			return classify("get user by id", err)
		}
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify("delete user", err)
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

func (r *UserRepository) find(ctx context.Context, id string) (userDoc, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	return doc, err
}
