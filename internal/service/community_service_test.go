package service

import (
	"context"
	"testing"

	"Reddit_MVP/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommunityFixture() (*CommunityService, *fakeCommunityStore, *fakeMemberStore) {
	members := newFakeMemberStore()
	communities := newFakeCommunityStore(members)
	return NewCommunityService(communities, members, pkg.NopEventSink{}), communities, members
}

func TestCreateCommunityAutoJoinsCreator(t *testing.T) {
	svc, _, members := newCommunityFixture()

	c, err := svc.Create(context.Background(), 1, "tech", "all things tech")
	require.NoError(t, err)
	require.NotZero(t, c.ID)

	// 创建完成的瞬间创建者就是成员
	ok, err := members.IsMember(c.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateCommunityValidation(t *testing.T) {
	svc, _, _ := newCommunityFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "   ", "desc")
	require.Error(t, err)
	assert.Equal(t, pkg.KindInvalidInput, pkg.KindOf(err))

	_, err = svc.Create(ctx, 1, "tech", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "tech", "again")
	require.Error(t, err)
	assert.Equal(t, pkg.KindConflict, pkg.KindOf(err))
}

func TestJoinIsIdempotent(t *testing.T) {
	svc, _, _ := newCommunityFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "tech", "")
	require.NoError(t, err)

	joined, err := svc.Join(ctx, 2, c.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = svc.Join(ctx, 2, c.ID)
	require.NoError(t, err)
	assert.False(t, joined)
}

func TestJoinMissingCommunity(t *testing.T) {
	svc, _, _ := newCommunityFixture()

	_, err := svc.Join(context.Background(), 1, 404)
	require.Error(t, err)
	assert.Equal(t, pkg.KindNotFound, pkg.KindOf(err))
}

func TestLeaveWithoutMembership(t *testing.T) {
	svc, _, _ := newCommunityFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, 1, "tech", "")
	require.NoError(t, err)

	err = svc.Leave(ctx, 2, c.ID)
	require.Error(t, err)
	assert.Equal(t, pkg.KindNotFound, pkg.KindOf(err))

	_, err = svc.Join(ctx, 2, c.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(ctx, 2, c.ID))
}

func TestMyCommunities(t *testing.T) {
	svc, _, _ := newCommunityFixture()
	ctx := context.Background()

	c1, err := svc.Create(ctx, 1, "tech", "")
	require.NoError(t, err)
	c2, err := svc.Create(ctx, 2, "games", "")
	require.NoError(t, err)
	_, err = svc.Join(ctx, 1, c2.ID)
	require.NoError(t, err)

	created, joined, err := svc.MyCommunities(1)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, c1.ID, created[0].ID)
	// 自己建的社区也在 joined 里：建立即入会
	assert.Len(t, joined, 2)
}
