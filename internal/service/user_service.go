package service

import (
	"context"
	"errors"
	"strings"

	"Reddit_MVP/internal/model"
	"Reddit_MVP/internal/pkg"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	users  UserStore
	tokens TokenStore
	sink   pkg.EventSink
}

func NewUserService(users UserStore, tokens TokenStore, sink pkg.EventSink) *UserService {
	return &UserService{users: users, tokens: tokens, sink: sink}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, pkg.InvalidInput("username required")
	}
	if email == "" {
		return nil, pkg.InvalidInput("email required")
	}
	if password == "" {
		return nil, pkg.InvalidInput("password required")
	}

	// 先查后插只是为了给出哪个字段冲突；并发竞争由唯一索引兜底
	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, pkg.Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.Internal("user lookup failed", err)
	}
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, pkg.Conflict("email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.Internal("user lookup failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, pkg.Internal("hash failed", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err = s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkg.Conflict("username or email already exists")
		}
		return nil, pkg.Internal("user create failed", err)
	}

	s.sink.Log(ctx, "user_register", user.ID, map[string]any{"username": user.Username})
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*pkg.Pair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, pkg.Unauthorized("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, pkg.Unauthorized("invalid credentials")
	}

	pair, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, pkg.Internal("token issue failed", err)
	}
	// 单活跃会话：新登录顶掉旧 token
	if err = s.tokens.AddUserToken(user.ID, pair.AccessToken); err != nil {
		return nil, pkg.Internal("session store failed", err)
	}

	s.sink.Log(ctx, "user_login", user.ID, map[string]any{"username": user.Username})
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	if err := s.tokens.DeleteUserToken(userID); err != nil {
		return pkg.Internal("logout failed", err)
	}
	s.sink.Log(ctx, "user_logout", userID, nil)
	return nil
}

// Refresh 换发新的一对 token，并把新 access 写进会话库
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, pkg.Unauthorized("invalid or expired refresh token")
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, pkg.Internal("token parse failed", err)
	}
	if err = s.tokens.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, pkg.Internal("session store failed", err)
	}
	s.sink.Log(ctx, "token_refresh", claims.UserID, nil)
	return pair, nil
}

func (s *UserService) GetProfile(userID uint64) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("user not found")
		}
		return nil, pkg.Internal("user lookup failed", err)
	}
	return user, nil
}

// ProfileUpdate PATCH 语义：nil 表示不改该字段
type ProfileUpdate struct {
	Username        *string
	DisplayName     *string
	ProfileImageKey *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, upd ProfileUpdate) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("user not found")
		}
		return nil, pkg.Internal("user lookup failed", err)
	}

	if upd.Username != nil {
		cleaned := strings.TrimSpace(*upd.Username)
		if cleaned == "" {
			return nil, pkg.InvalidInput("username cannot be empty")
		}
		if cleaned != user.Username {
			if _, err = s.users.FindByUsername(cleaned); err == nil {
				return nil, pkg.Conflict("username already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkg.Internal("user lookup failed", err)
			}
			user.Username = cleaned
		}
	}
	if upd.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.ProfileImageKey != nil {
		// 指向对象存储的弱引用，不校验对象是否存在
		user.ProfileImageKey = *upd.ProfileImageKey
	}

	if err = s.users.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkg.Conflict("username already exists")
		}
		return nil, pkg.Internal("user update failed", err)
	}

	s.sink.Log(ctx, "user_profile_update", user.ID, map[string]any{
		"updated_username":      upd.Username != nil,
		"updated_display_name":  upd.DisplayName != nil,
		"updated_profile_image": upd.ProfileImageKey != nil,
	})
	return user, nil
}
