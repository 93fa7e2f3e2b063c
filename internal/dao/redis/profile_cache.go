package redis

import (
	"context"
	"encoding/json"

	"chitchat_server/pkg/constants"

	"go.uber.org/zap"
)

// CachedProfile is the denormalized user profile kept hot for message
// assembly and friend lists.
type CachedProfile struct {
	Uuid        string `json:"uuid"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

func profileKey(userUuid string) string {
	return "user_profile:" + userUuid
}

// GetProfile returns the cached profile or nil on miss. Cache failures count
// as misses.
func GetProfile(ctx context.Context, userUuid string) *CachedProfile {
	raw, err := GetKey(ctx, profileKey(userUuid))
	if err != nil || raw == "" {
		return nil
	}
	var p CachedProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		zap.L().Warn("corrupt profile cache entry", zap.String("user", userUuid), zap.Error(err))
		return nil
	}
	return &p
}

// SetProfile writes a profile with the default cache lifetime.
func SetProfile(ctx context.Context, p *CachedProfile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := SetKeyEx(ctx, profileKey(p.Uuid), string(raw), constants.REDIS_TIMEOUT); err != nil {
		zap.L().Warn("profile cache write failed", zap.String("user", p.Uuid), zap.Error(err))
	}
}

// InvalidateProfile drops the cached profile after a profile mutation.
func InvalidateProfile(ctx context.Context, userUuid string) {
	if err := DelKeys(ctx, profileKey(userUuid)); err != nil {
		zap.L().Warn("profile cache invalidate failed", zap.String("user", userUuid), zap.Error(err))
	}
}

// ---- online presence ----

const onlineKey = "online_users"

// MarkOnline records a live websocket session for the user.
func MarkOnline(ctx context.Context, userUuid string) error {
	return SAdd(ctx, onlineKey, userUuid)
}

// MarkOffline removes the user from the online set.
func MarkOffline(ctx context.Context, userUuid string) error {
	return SRem(ctx, onlineKey, userUuid)
}

// IsOnline reports whether the user currently holds a websocket session.
func IsOnline(ctx context.Context, userUuid string) bool {
	ok, err := SIsMember(ctx, onlineKey, userUuid)
	return err == nil && ok
}

// OnlineUsers returns the ids of all users with a live websocket session.
func OnlineUsers(ctx context.Context) ([]string, error) {
	return SMembers(ctx, onlineKey)
}
