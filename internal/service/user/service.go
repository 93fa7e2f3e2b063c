// Package user implements registration, authentication and profiles.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chitchat_server/internal/dao/mysql/repository"
	myredis "chitchat_server/internal/dao/redis"
	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/internal/model"
	"chitchat_server/pkg/errorx"
	"chitchat_server/pkg/util/jwt"
)

// refreshTokenTTL bounds the redis record of the active refresh token id.
// Must cover the token expiry configured in jwt.Init.
const refreshTokenTTL = 7 * 24 * time.Hour

func refreshKey(userId string) string {
	return "refresh_token:" + userId
}

type Service struct {
	repos repository.Repositories

	// cacheEnabled turns the redis-backed pieces off in tests without redis.
	cacheEnabled bool
}

func NewService(repos repository.Repositories, cacheEnabled bool) *Service {
	return &Service{repos: repos, cacheEnabled: cacheEnabled}
}

// Register creates an account and signs the user in. Username and email must
// both be unused.
func (s *Service) Register(req request.RegisterRequest) (respond.LoginRespond, error) {
	if _, err := s.repos.Users().FindByUsername(req.Username); err == nil {
		return respond.LoginRespond{}, errorx.New(errorx.CodeUserExist, "username already taken")
	} else if !errorx.IsNotFound(err) {
		return respond.LoginRespond{}, err
	}
	if _, err := s.repos.Users().FindByEmail(req.Email); err == nil {
		return respond.LoginRespond{}, errorx.New(errorx.CodeUserExist, "email already registered")
	} else if !errorx.IsNotFound(err) {
		return respond.LoginRespond{}, err
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}
	u := model.User{
		Uuid:        uuid.NewString(),
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: displayName,
		RawPassword: req.Password,
		Status:      model.UserStatusActive,
	}
	if err := s.repos.Users().Create(&u); err != nil {
		return respond.LoginRespond{}, err
	}
	return s.issueTokens(&u)
}

// Login authenticates by username and password. Wrong username and wrong
// password return the same error so probes learn nothing.
func (s *Service) Login(req request.LoginRequest) (respond.LoginRespond, error) {
	u, err := s.repos.Users().FindByUsername(req.Username)
	if err != nil {
		if errorx.IsNotFound(err) {
			return respond.LoginRespond{}, errorx.New(errorx.CodeInvalidPassword, "invalid username or password")
		}
		return respond.LoginRespond{}, err
	}
	if !u.CheckPassword(req.Password) {
		return respond.LoginRespond{}, errorx.New(errorx.CodeInvalidPassword, "invalid username or password")
	}
	if !u.IsActive() {
		return respond.LoginRespond{}, errorx.New(errorx.CodeUnauthorized, "account is disabled")
	}
	return s.issueTokens(u)
}

// Refresh rotates the token pair. The presented refresh token must carry the
// token id currently recorded for the user, so a stolen old token dies the
// moment the legitimate client refreshes.
func (s *Service) Refresh(refreshToken string) (respond.LoginRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return respond.LoginRespond{}, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return respond.LoginRespond{}, errorx.New(errorx.CodeUnauthorized, "invalid refresh token")
	}
	if s.cacheEnabled {
		current, err := myredis.GetKey(context.Background(), refreshKey(claims.UserID))
		if err != nil {
			return respond.LoginRespond{}, errorx.Wrap(err, errorx.CodeCacheError, "refresh token lookup")
		}
		if current != claims.TokenID {
			return respond.LoginRespond{}, errorx.New(errorx.CodeUnauthorized, "refresh token revoked")
		}
	}
	u, err := s.repos.Users().FindByUuid(claims.UserID)
	if err != nil {
		return respond.LoginRespond{}, err
	}
	if !u.IsActive() {
		return respond.LoginRespond{}, errorx.New(errorx.CodeUnauthorized, "account is disabled")
	}
	return s.issueTokens(u)
}

func (s *Service) issueTokens(u *model.User) (respond.LoginRespond, error) {
	access, err := jwt.GenerateAccessToken(u.Uuid)
	if err != nil {
		return respond.LoginRespond{}, errorx.Wrap(err, errorx.CodeServerBusy, "sign access token")
	}
	refresh, tokenID, err := jwt.GenerateRefreshToken(u.Uuid)
	if err != nil {
		return respond.LoginRespond{}, errorx.Wrap(err, errorx.CodeServerBusy, "sign refresh token")
	}
	if s.cacheEnabled {
		if err := myredis.SetKeyEx(context.Background(), refreshKey(u.Uuid), tokenID, refreshTokenTTL); err != nil {
			zap.L().Warn("refresh token record failed", zap.String("user", u.Uuid), zap.Error(err))
		}
	}
	return respond.LoginRespond{
		User:         respond.NewUserRespond(u),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// GetUserInfo returns one user's public profile, reading through the cache.
func (s *Service) GetUserInfo(userId string) (respond.UserRespond, error) {
	if s.cacheEnabled {
		if p := myredis.GetProfile(context.Background(), userId); p != nil {
			return respond.UserRespond{
				Uuid:        p.Uuid,
				Username:    p.Username,
				Email:       p.Email,
				DisplayName: p.DisplayName,
				Avatar:      p.Avatar,
				Active:      true,
				Online:      myredis.IsOnline(context.Background(), userId),
			}, nil
		}
	}
	u, err := s.repos.Users().FindByUuid(userId)
	if err != nil {
		return respond.UserRespond{}, err
	}
	if s.cacheEnabled && u.IsActive() {
		myredis.SetProfile(context.Background(), &myredis.CachedProfile{
			Uuid:        u.Uuid,
			Username:    u.Username,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Avatar:      u.Avatar,
		})
	}
	rsp := respond.NewUserRespond(u)
	if s.cacheEnabled {
		rsp.Online = myredis.IsOnline(context.Background(), userId)
	}
	return rsp, nil
}

// UpdateProfile mutates the caller's display name and avatar and drops the
// cached profile.
func (s *Service) UpdateProfile(userId string, req request.UpdateProfileRequest) (respond.UserRespond, error) {
	u, err := s.repos.Users().FindByUuid(userId)
	if err != nil {
		return respond.UserRespond{}, err
	}
	if req.DisplayName != "" {
		u.DisplayName = req.DisplayName
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	if err := s.repos.Users().Update(u); err != nil {
		return respond.UserRespond{}, err
	}
	if s.cacheEnabled {
		myredis.InvalidateProfile(context.Background(), userId)
	}
	return respond.NewUserRespond(u), nil
}

// OnlineUsers returns the ids of users holding a live websocket session.
// Without the cache there is no presence record, so the list is empty.
func (s *Service) OnlineUsers() ([]string, error) {
	if !s.cacheEnabled {
		return nil, nil
	}
	return myredis.OnlineUsers(context.Background())
}

// FindByEmail resolves a user by email, for the friend-request UI.
func (s *Service) FindByEmail(email string) (respond.UserRespond, error) {
	u, err := s.repos.Users().FindByEmail(email)
	if err != nil {
		return respond.UserRespond{}, err
	}
	return respond.NewUserRespond(u), nil
}
