package mongo

import (
	"context"

	"Reddit_MVP/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	mongodb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository struct {
	C *mongodb.Collection
}

func NewCommentRepository(db *mongodb.Database) *CommentRepository {
	return &CommentRepository{C: db.Collection("comments")}
}

func (r *CommentRepository) Insert(ctx context.Context, comment *model.Comment) error {
	_, err := r.C.InsertOne(ctx, comment)
	return err
}

// ListByPost 评论按时间正序（楼层顺序），与帖子列表的排序方向相反。
// 平铺返回，回复树由客户端按 parent_comment_id 组装。
func (r *CommentRepository) ListByPost(ctx context.Context, postID string, limit, skip int64) ([]model.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.C.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []model.Comment
	if err = cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
