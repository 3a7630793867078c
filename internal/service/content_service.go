package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Reddit_MVP/internal/model"
	"Reddit_MVP/internal/pkg"

	mongodb "go.mongodb.org/mongo-driver/mongo"
)

// ContentService 帖子与评论的编排层。文档库不校验外键，
// 所有指向关系库的引用（社区、作者）都在写入前由这里验证。
type ContentService struct {
	posts    PostStore
	comments CommentStore
	users    UserStore
	gate     *MembershipGate
	sink     pkg.EventSink
}

func NewContentService(posts PostStore, comments CommentStore, users UserStore, gate *MembershipGate, sink pkg.EventSink) *ContentService {
	return &ContentService{posts: posts, comments: comments, users: users, gate: gate, sink: sink}
}

func (s *ContentService) CreatePost(ctx context.Context, authorID, communityID uint64, title, body string, mediaKeys []string) (*model.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, pkg.InvalidInput("title required")
	}
	if err := s.gate.AuthorizePostCreate(authorID, communityID); err != nil {
		return nil, err
	}

	if mediaKeys == nil {
		mediaKeys = []string{}
	}
	post := &model.Post{
		PostID:      pkg.NewOpaqueID(),
		CommunityID: communityID,
		AuthorID:    authorID,
		Title:       title,
		Body:        body,
		MediaKeys:   mediaKeys,
		CreatedAt:   time.Now().UTC(),
		Score:       0,
		NumComments: 0,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, pkg.Internal("post insert failed", err)
	}

	s.sink.Log(ctx, "post_create", authorID, map[string]any{
		"post_id":      post.PostID,
		"community_id": communityID,
		"has_media":    len(mediaKeys) > 0,
	})
	s.enrichPosts(post)
	return post, nil
}

// ListPosts 新帖在前，skip/limit 翻页。两次翻页之间有新帖插入会挪动结果，
// MVP 规模下接受，不做游标。
func (s *ContentService) ListPosts(ctx context.Context, communityID uint64, limit, skip int64) ([]model.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if skip < 0 {
		skip = 0
	}
	posts, err := s.posts.ListByCommunity(ctx, communityID, limit, skip)
	if err != nil {
		return nil, pkg.Internal("post list failed", err)
	}
	refs := make([]*model.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	s.enrichPosts(refs...)
	return posts, nil
}

func (s *ContentService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongodb.ErrNoDocuments) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, pkg.Internal("post lookup failed", err)
	}
	s.enrichPosts(post)
	return post, nil
}

// CreateComment 评论插入和父帖计数自增是两次独立写，中间没有事务。
// 自增失败时评论已经落库，错误原样上抛，不重试也不回滚——
// 计数只会少不会多，修复留给对账任务。
func (s *ContentService) CreateComment(ctx context.Context, authorID uint64, postID, body string, parentCommentID *string) (*model.Comment, error) {
	post, err := s.gate.AuthorizeCommentCreate(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		CommentID:       pkg.NewOpaqueID(),
		PostID:          post.PostID,
		ParentCommentID: parentCommentID, // 悬空父引用按约定不校验
		AuthorID:        authorID,
		Body:            body,
		CreatedAt:       time.Now().UTC(),
		Score:           0,
	}
	if err = s.comments.Insert(ctx, comment); err != nil {
		return nil, pkg.Internal("comment insert failed", err)
	}
	if err = s.posts.IncNumComments(ctx, post.PostID, 1); err != nil {
		return nil, pkg.Internal("comment counter update failed", err)
	}

	s.sink.Log(ctx, "comment_create", authorID, map[string]any{
		"comment_id": comment.CommentID,
		"post_id":    post.PostID,
		"is_reply":   parentCommentID != nil,
	})
	s.enrichComments(comment)
	return comment, nil
}

// ListComments 时间正序平铺，树由客户端组装
func (s *ContentService) ListComments(ctx context.Context, postID string, limit, skip int64) ([]model.Comment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}
	comments, err := s.comments.ListByPost(ctx, postID, limit, skip)
	if err != nil {
		return nil, pkg.Internal("comment list failed", err)
	}
	refs := make([]*model.Comment, len(comments))
	for i := range comments {
		refs[i] = &comments[i]
	}
	s.enrichComments(refs...)
	return comments, nil
}

// enrichPosts 读取时从关系库批量回填作者名，文档里不落这份冗余，
// 用户改名后所有读取立即看到新值。回填失败不影响主结果。
func (s *ContentService) enrichPosts(posts ...*model.Post) {
	ids := make([]uint64, 0, len(posts))
	seen := make(map[uint64]bool)
	for _, p := range posts {
		if p != nil && !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}
	authors := s.lookupAuthors(ids)
	for _, p := range posts {
		if p == nil {
			continue
		}
		if u, ok := authors[p.AuthorID]; ok {
			p.AuthorUsername = u.Username
			p.AuthorDisplayName = u.DisplayName
		}
	}
}

func (s *ContentService) enrichComments(comments ...*model.Comment) {
	ids := make([]uint64, 0, len(comments))
	seen := make(map[uint64]bool)
	for _, c := range comments {
		if c != nil && !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}
	authors := s.lookupAuthors(ids)
	for _, c := range comments {
		if c == nil {
			continue
		}
		if u, ok := authors[c.AuthorID]; ok {
			c.AuthorUsername = u.Username
			c.AuthorDisplayName = u.DisplayName
		}
	}
}

func (s *ContentService) lookupAuthors(ids []uint64) map[uint64]model.User {
	out := make(map[uint64]model.User, len(ids))
	if len(ids) == 0 {
		return out
	}
	users, err := s.users.FindByIDs(ids)
	if err != nil {
		// 作者可能指向已不存在的用户（弱引用），查不到就留空
		return out
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out
}
