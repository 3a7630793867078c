package model

import "time"

type Community struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Description string    `gorm:"size:500;not null" json:"description"`
	CreatorID   uint64    `gorm:"not null;index" json:"created_by_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// CommunityMember (community_id, user_id) 唯一，成员关系只有存在/不存在两种状态
type CommunityMember struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
