package mysql

import (
	"Reddit_MVP/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create 建社区并让创建者入会，同库同事务。
// "创建者必是成员"这条不变量因此在任何时刻都成立。
func (r *CommunityRepository) Create(c *model.Community) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		mRepo := &CommunityMemberRepository{DB: tx}
		if _, err := mRepo.Join(&model.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
		}); err != nil {
			return err
		}
		return nil
	})
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, id).Error
	return &community, err
}

func (r *CommunityRepository) FindByName(name string) (*model.Community, error) {
	var community model.Community
	err := r.DB.Where("name = ?", name).First(&community).Error
	return &community, err
}

func (r *CommunityRepository) List(offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// ListCreatedBy 用户建立的社区
func (r *CommunityRepository) ListCreatedBy(userID uint64) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Where("creator_id = ?", userID).Find(&list).Error
	return list, err
}

// ListJoinedBy 用户加入的社区（含自己建立的，建立即入会）
func (r *CommunityRepository) ListJoinedBy(userID uint64) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.
		Joins("JOIN community_members m ON m.community_id = communities.id").
		Where("m.user_id = ?", userID).
		Find(&list).Error
	return list, err
}
