package service

import (
	"context"
	"errors"
	"strings"

	"Reddit_MVP/internal/model"
	"Reddit_MVP/internal/pkg"

	"gorm.io/gorm"
)

type CommunityService struct {
	communities CommunityStore
	members     MemberStore
	sink        pkg.EventSink
}

func NewCommunityService(communities CommunityStore, members MemberStore, sink pkg.EventSink) *CommunityService {
	return &CommunityService{communities: communities, members: members, sink: sink}
}

// Create 建社区，创建者自动入会（仓储层同事务完成）
func (s *CommunityService) Create(ctx context.Context, userID uint64, name, desc string) (*model.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkg.InvalidInput("community name required")
	}

	// 先查后插只为友好报错；并发竞争由唯一索引兜底
	if _, err := s.communities.FindByName(name); err == nil {
		return nil, pkg.Conflict("community name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.Internal("community lookup failed", err)
	}

	community := &model.Community{
		Name:        name,
		Description: strings.TrimSpace(desc),
		CreatorID:   userID,
	}
	if err := s.communities.Create(community); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkg.Conflict("community name already exists")
		}
		return nil, pkg.Internal("community create failed", err)
	}

	s.sink.Log(ctx, "community_create", userID, map[string]any{
		"community_id": community.ID,
		"name":         community.Name,
	})
	return community, nil
}

func (s *CommunityService) List(page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	list, err := s.communities.List((page-1)*size, size)
	if err != nil {
		return nil, pkg.Internal("community list failed", err)
	}
	return list, nil
}

// Join 幂等：已是成员返回 joined=false 不报错
func (s *CommunityService) Join(ctx context.Context, userID, communityID uint64) (bool, error) {
	if _, err := s.communities.FindByID(communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkg.NotFound("community not found")
		}
		return false, pkg.Internal("community lookup failed", err)
	}

	joined, err := s.members.Join(&model.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
	})
	if err != nil {
		return false, pkg.Internal("join failed", err)
	}
	if joined {
		s.sink.Log(ctx, "community_join", userID, map[string]any{"community_id": communityID})
	}
	return joined, nil
}

func (s *CommunityService) Leave(ctx context.Context, userID, communityID uint64) error {
	removed, err := s.members.Leave(communityID, userID)
	if err != nil {
		return pkg.Internal("leave failed", err)
	}
	if !removed {
		return pkg.NotFound("membership not found")
	}
	s.sink.Log(ctx, "community_leave", userID, map[string]any{"community_id": communityID})
	return nil
}

// MyCommunities 自己创建的和加入的两份列表
func (s *CommunityService) MyCommunities(userID uint64) (created, joined []model.Community, err error) {
	created, err = s.communities.ListCreatedBy(userID)
	if err != nil {
		return nil, nil, pkg.Internal("community list failed", err)
	}
	joined, err = s.communities.ListJoinedBy(userID)
	if err != nil {
		return nil, nil, pkg.Internal("community list failed", err)
	}
	return created, joined, nil
}
