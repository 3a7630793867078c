package model

import "time"

// Post 文档店帖子记录。community_id/author_user_id 是弱引用，
// 写入前必须在关系库侧校验，文档库不会拒绝悬空引用。
type Post struct {
	PostID      string    `bson:"post_id" json:"post_id"`
	CommunityID uint64    `bson:"community_id" json:"community_id"`
	AuthorID    uint64    `bson:"author_user_id" json:"author_user_id"`
	Title       string    `bson:"title" json:"title"`
	Body        string    `bson:"body" json:"body"`
	MediaKeys   []string  `bson:"media_keys" json:"media_keys"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	Score       int64     `bson:"score" json:"score"`
	NumComments int64     `bson:"num_comments" json:"num_comments"`

	// 读取时从关系库回填，不落库，保证资料修改后所有读取立即生效
	AuthorUsername    string `bson:"-" json:"author_username,omitempty"`
	AuthorDisplayName string `bson:"-" json:"author_display_name,omitempty"`
}

// Comment parent_comment_id 可悬空（回复的对象可能不存在），按约定不校验
type Comment struct {
	CommentID       string    `bson:"comment_id" json:"comment_id"`
	PostID          string    `bson:"post_id" json:"post_id"`
	ParentCommentID *string   `bson:"parent_comment_id" json:"parent_comment_id"`
	AuthorID        uint64    `bson:"author_user_id" json:"author_user_id"`
	Body            string    `bson:"body" json:"body"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	Score           int64     `bson:"score" json:"score"`

	AuthorUsername    string `bson:"-" json:"author_username,omitempty"`
	AuthorDisplayName string `bson:"-" json:"author_display_name,omitempty"`
}
