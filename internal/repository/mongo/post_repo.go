package mongo

import (
	"context"

	"Reddit_MVP/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepository struct {
	C *mongodb.Collection
}

func NewPostRepository(db *mongodb.Database) *PostRepository {
	return &PostRepository{C: db.Collection("posts")}
}

func (r *PostRepository) Insert(ctx context.Context, post *model.Post) error {
	_, err := r.C.InsertOne(ctx, post)
	return err
}

// FindByID 按不透明 id 点查；不存在返回 mongo.ErrNoDocuments
func (r *PostRepository) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	var post model.Post
	err := r.C.FindOne(ctx, bson.M{"post_id": postID}).Decode(&post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByCommunity 新帖在前。skip/limit 翻页在并发插入下不稳定，MVP 可接受
func (r *PostRepository) ListByCommunity(ctx context.Context, communityID uint64, limit, skip int64) ([]model.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.C.Find(ctx, bson.M{"community_id": communityID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []model.Post
	if err = cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// IncNumComments 单文档 $inc 自身是原子的，并发自增不会丢
func (r *PostRepository) IncNumComments(ctx context.Context, postID string, delta int64) error {
	_, err := r.C.UpdateOne(ctx,
		bson.M{"post_id": postID},
		bson.M{"$inc": bson.M{"num_comments": delta}},
	)
	return err
}
