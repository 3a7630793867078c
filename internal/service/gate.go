package service

import (
	"context"
	"errors"

	"Reddit_MVP/internal/model"
	"Reddit_MVP/internal/pkg"

	mongodb "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// MembershipGate 内容写入前的成员资格检查，关系库和文档库状态
// 只在这里交叉验证。所有内容变更操作都必须先过这道门。
// 目标不存在返回 NotFound，不是成员返回 Forbidden，两者必须可区分（404 vs 403）。
type MembershipGate struct {
	communities CommunityStore
	members     MemberStore
	posts       PostStore
}

func NewMembershipGate(communities CommunityStore, members MemberStore, posts PostStore) *MembershipGate {
	return &MembershipGate{communities: communities, members: members, posts: posts}
}

// AuthorizePostCreate 发帖前置检查：社区存在且用户是成员
func (g *MembershipGate) AuthorizePostCreate(userID, communityID uint64) error {
	if _, err := g.communities.FindByID(communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("community not found")
		}
		return pkg.Internal("community lookup failed", err)
	}
	ok, err := g.members.IsMember(communityID, userID)
	if err != nil {
		return pkg.Internal("membership lookup failed", err)
	}
	if !ok {
		return pkg.Forbidden("join the community to post")
	}
	return nil
}

// AuthorizeCommentCreate 评论前置检查：帖子存在，且用户是帖子所属社区的成员。
// 社区 id 取自文档库里的帖子记录，校验仍然打到关系库。
// 通过时把帖子一并返回，调用方不用二次点查。
func (g *MembershipGate) AuthorizeCommentCreate(ctx context.Context, userID uint64, postID string) (*model.Post, error) {
	post, err := g.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocuments) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, pkg.Internal("post lookup failed", err)
	}
	ok, err := g.members.IsMember(post.CommunityID, userID)
	if err != nil {
		return nil, pkg.Internal("membership lookup failed", err)
	}
	if !ok {
		return nil, pkg.Forbidden("join the community to comment")
	}
	return post, nil
}
