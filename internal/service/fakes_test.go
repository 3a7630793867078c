package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"Reddit_MVP/internal/model"

	mongodb "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// 内存假仓储，错误语义对齐真实现：关系库未命中返回 gorm.ErrRecordNotFound、
// 冲突返回 gorm.ErrDuplicatedKey，文档库未命中返回 mongo.ErrNoDocuments。

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]model.User{}}
}

func (s *fakeUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.byID[user.ID] = *user
	return nil
}

func (s *fakeUserStore) FindByID(id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) FindByIDs(ids []uint64) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, id := range ids {
		if u, ok := s.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Update(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.byID {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	s.byID[user.ID] = *user
	return nil
}

type fakeMemberStore struct {
	mu    sync.Mutex
	pairs map[[2]uint64]bool // (communityID, userID)
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{pairs: map[[2]uint64]bool{}}
}

func (s *fakeMemberStore) Join(m *model.CommunityMember) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]uint64{m.CommunityID, m.UserID}
	if s.pairs[k] {
		return false, nil
	}
	s.pairs[k] = true
	return true, nil
}

func (s *fakeMemberStore) Leave(communityID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := [2]uint64{communityID, userID}
	if !s.pairs[k] {
		return false, nil
	}
	delete(s.pairs, k)
	return true, nil
}

func (s *fakeMemberStore) IsMember(communityID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pairs[[2]uint64{communityID, userID}], nil
}

// fakeCommunityStore Create 同时写入成员关系，复刻真实仓储的同事务自动入会
type fakeCommunityStore struct {
	mu      sync.Mutex
	nextID  uint64
	byID    map[uint64]model.Community
	members *fakeMemberStore
}

func newFakeCommunityStore(members *fakeMemberStore) *fakeCommunityStore {
	return &fakeCommunityStore{byID: map[uint64]model.Community{}, members: members}
}

func (s *fakeCommunityStore) Create(c *model.Community) error {
	s.mu.Lock()
	for _, existing := range s.byID {
		if existing.Name == c.Name {
			s.mu.Unlock()
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	c.ID = s.nextID
	c.CreatedAt = time.Now()
	s.byID[c.ID] = *c
	s.mu.Unlock()

	_, err := s.members.Join(&model.CommunityMember{CommunityID: c.ID, UserID: c.CreatorID})
	return err
}

func (s *fakeCommunityStore) FindByName(name string) (*model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.byID {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCommunityStore) FindByID(id uint64) (*model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.byID[id]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCommunityStore) List(offset, limit int) ([]model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Community
	for _, c := range s.byID {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeCommunityStore) ListCreatedBy(userID uint64) ([]model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Community
	for _, c := range s.byID {
		if c.CreatorID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommunityStore) ListJoinedBy(userID uint64) ([]model.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Community
	for _, c := range s.byID {
		if s.members.pairs[[2]uint64{c.ID, userID}] {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePostStore struct {
	mu      sync.Mutex
	byID    map[string]*model.Post
	failInc bool
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{byID: map[string]*model.Post{}}
}

func (s *fakePostStore) Insert(ctx context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *post
	s.byID[post.PostID] = &p
	return nil
}

func (s *fakePostStore) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.byID[postID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, mongodb.ErrNoDocuments
}

func (s *fakePostStore) ListByCommunity(ctx context.Context, communityID uint64, limit, skip int64) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Post
	for _, p := range s.byID {
		if p.CommunityID == communityID {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if skip >= int64(len(all)) {
		return nil, nil
	}
	all = all[skip:]
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *fakePostStore) IncNumComments(ctx context.Context, postID string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInc {
		return fmt.Errorf("write concern error")
	}
	if p, ok := s.byID[postID]; ok {
		p.NumComments += delta
	}
	return nil
}

type fakeCommentStore struct {
	mu  sync.Mutex
	all []model.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{}
}

func (s *fakeCommentStore) Insert(ctx context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, *comment)
	return nil
}

func (s *fakeCommentStore) ListByPost(ctx context.Context, postID string, limit, skip int64) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Comment
	for _, c := range s.all {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if skip >= int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeObject struct {
	data        []byte
	contentType string
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string]fakeObject{}}
}

func (s *fakeObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = fakeObject{data: data, contentType: contentType}
	return nil
}

func (s *fakeObjectStore) Stat(ctx context.Context, key string) (model.MediaInfo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return model.MediaInfo{}, false, nil
	}
	return model.MediaInfo{ContentType: obj.contentType, Size: int64(len(obj.data))}, true, nil
}

func (s *fakeObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, model.MediaInfo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, model.MediaInfo{}, false, nil
	}
	return io.NopCloser(bytes.NewReader(obj.data)), model.MediaInfo{ContentType: obj.contentType, Size: int64(len(obj.data))}, true, nil
}

func (s *fakeObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://cdn.example.com/%s?X-Amz-Expires=%d", key, int64(expiry.Seconds())), nil
}

func (s *fakeObjectStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// recordSink 记录事件类型，断言状态变更都有事件落盘
type recordSink struct {
	mu    sync.Mutex
	types []string
}

func (s *recordSink) Log(ctx context.Context, eventType string, actorID uint64, payload map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types = append(s.types, eventType)
}

func (s *recordSink) logged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.types...)
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[uint64]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[uint64]string{}}
}

func (s *fakeTokenStore) AddUserToken(usrID uint64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[usrID] = token
	return nil
}

func (s *fakeTokenStore) DeleteUserToken(usrID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, usrID)
	return nil
}
