package service

import (
	"context"
	"io"
	"time"

	"Reddit_MVP/internal/model"
)

// 存储接口按消费方声明，mysql/mongo/redis/minio 仓储是各自的实现。
// 关系库侧沿用 gorm 语义：未命中返回 gorm.ErrRecordNotFound，
// 唯一键冲突返回 gorm.ErrDuplicatedKey；文档库侧未命中返回 mongo.ErrNoDocuments。

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByIDs(ids []uint64) ([]model.User, error)
	Update(user *model.User) error
}

type CommunityStore interface {
	Create(c *model.Community) error
	FindByID(id uint64) (*model.Community, error)
	FindByName(name string) (*model.Community, error)
	List(offset, limit int) ([]model.Community, error)
	ListCreatedBy(userID uint64) ([]model.Community, error)
	ListJoinedBy(userID uint64) ([]model.Community, error)
}

type MemberStore interface {
	Join(member *model.CommunityMember) (bool, error)
	Leave(communityID, userID uint64) (bool, error)
	IsMember(communityID, userID uint64) (bool, error)
}

type PostStore interface {
	Insert(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, postID string) (*model.Post, error)
	ListByCommunity(ctx context.Context, communityID uint64, limit, skip int64) ([]model.Post, error)
	IncNumComments(ctx context.Context, postID string, delta int64) error
}

type CommentStore interface {
	Insert(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID string, limit, skip int64) ([]model.Comment, error)
}

type TokenStore interface {
	AddUserToken(usrID uint64, token string) error
	DeleteUserToken(usrID uint64) error
}

// ObjectStore Stat/Get 用 found 区分"对象不在"与存储故障
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Stat(ctx context.Context, key string) (model.MediaInfo, bool, error)
	Get(ctx context.Context, key string) (io.ReadCloser, model.MediaInfo, bool, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
