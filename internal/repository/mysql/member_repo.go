package mysql

import (
	"Reddit_MVP/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join 幂等插入：(community_id, user_id) 已存在则不报错。
// 返回本次是否真的新增了成员关系。
func (r *CommunityMemberRepository) Join(member *model.CommunityMember) (bool, error) {
	tx := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member)
	return tx.RowsAffected > 0, tx.Error
}

// Leave 返回是否删到了行，用于区分"本来就不是成员"
func (r *CommunityMemberRepository) Leave(communityID, userID uint64) (bool, error) {
	tx := r.DB.Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{})
	return tx.RowsAffected > 0, tx.Error
}

func (r *CommunityMemberRepository) IsMember(communityID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}
