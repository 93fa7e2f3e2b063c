package user

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"chitchat_server/internal/dao/memory"
	myredis "chitchat_server/internal/dao/redis"
	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/model"
	"chitchat_server/pkg/errorx"
	"chitchat_server/pkg/util/jwt"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	jwt.Init("test-secret", 30, 168)

	mr := miniredis.RunT(t)
	myredis.InitWithClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	store := memory.NewStore()
	return NewService(store, true), store
}

func register(t *testing.T, svc *Service, username string) {
	t.Helper()
	_, err := svc.Register(request.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService(t)

	rsp, err := svc.Register(request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rsp.User.Uuid == "" || rsp.AccessToken == "" || rsp.RefreshToken == "" {
		t.Fatalf("incomplete respond: %+v", rsp)
	}
	// Display name defaults to the username.
	if rsp.User.DisplayName != "alice" {
		t.Fatalf("expected default display name, got %q", rsp.User.DisplayName)
	}

	claims, err := jwt.ParseToken(rsp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != rsp.User.Uuid || claims.Subject != "access_token" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterUniqueness(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice")

	_, err := svc.Register(request.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "password123",
	})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("duplicate username: expected user exist, got %v", err)
	}
	_, err = svc.Register(request.RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "password123",
	})
	if errorx.GetCode(err) != errorx.CodeUserExist {
		t.Fatalf("duplicate email: expected user exist, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, store := newTestService(t)
	register(t, svc, "alice")

	rsp, err := svc.Login(request.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rsp.AccessToken == "" || rsp.RefreshToken == "" {
		t.Fatalf("missing tokens: %+v", rsp)
	}

	// Wrong password and unknown user fail identically.
	_, badPass := svc.Login(request.LoginRequest{Username: "alice", Password: "wrong"})
	_, badUser := svc.Login(request.LoginRequest{Username: "nobody", Password: "password123"})
	for name, err := range map[string]error{"wrong password": badPass, "unknown user": badUser} {
		if errorx.GetCode(err) != errorx.CodeInvalidPassword {
			t.Fatalf("%s: expected invalid password, got %v", name, err)
		}
	}

	// Disabled accounts cannot sign in even with the right password.
	u, err := store.Users().FindByUsername("alice")
	if err != nil {
		t.Fatal(err)
	}
	u.Status = model.UserStatusDisabled
	if err := store.Users().Update(u); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login(request.LoginRequest{Username: "alice", Password: "password123"}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("disabled account: expected unauthorized, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice")

	first, err := svc.Login(request.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}

	second, err := svc.Refresh(first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// The superseded token is revoked.
	if _, err := svc.Refresh(first.RefreshToken); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("stale token: expected unauthorized, got %v", err)
	}
	// The current one keeps working.
	if _, err := svc.Refresh(second.RefreshToken); err != nil {
		t.Fatalf("current token: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice")

	rsp, err := svc.Login(request.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refresh(rsp.AccessToken); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("access token: expected unauthorized, got %v", err)
	}
	if _, err := svc.Refresh("not-a-token"); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("garbage token: expected unauthorized, got %v", err)
	}
}

func TestGetUserInfoCaching(t *testing.T) {
	svc, store := newTestService(t)
	register(t, svc, "alice")

	u, err := store.Users().FindByUsername("alice")
	if err != nil {
		t.Fatal(err)
	}

	// First read populates the cache.
	got, err := svc.GetUserInfo(u.Uuid)
	if err != nil {
		t.Fatalf("GetUserInfo: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	// A direct store write is invisible while the cache entry lives.
	u.DisplayName = "Alice Prime"
	if err := store.Users().Update(u); err != nil {
		t.Fatal(err)
	}
	stale, err := svc.GetUserInfo(u.Uuid)
	if err != nil {
		t.Fatal(err)
	}
	if stale.DisplayName != "alice" {
		t.Fatalf("expected cached display name, got %q", stale.DisplayName)
	}

	// UpdateProfile invalidates, so the next read is fresh.
	updated, err := svc.UpdateProfile(u.Uuid, request.UpdateProfileRequest{DisplayName: "Alice II"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.DisplayName != "Alice II" {
		t.Fatalf("unexpected respond: %+v", updated)
	}
	fresh, err := svc.GetUserInfo(u.Uuid)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.DisplayName != "Alice II" {
		t.Fatalf("expected fresh display name, got %q", fresh.DisplayName)
	}
}

func TestOnlinePresence(t *testing.T) {
	svc, store := newTestService(t)
	register(t, svc, "alice")

	u, err := store.Users().FindByUsername("alice")
	if err != nil {
		t.Fatal(err)
	}

	ids, err := svc.OnlineUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected nobody online, got %v", ids)
	}

	if err := myredis.MarkOnline(context.Background(), u.Uuid); err != nil {
		t.Fatal(err)
	}
	ids, err = svc.OnlineUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != u.Uuid {
		t.Fatalf("expected alice online, got %v", ids)
	}
	got, err := svc.GetUserInfo(u.Uuid)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Online {
		t.Fatal("profile should report online")
	}

	if err := myredis.MarkOffline(context.Background(), u.Uuid); err != nil {
		t.Fatal(err)
	}
	got, err = svc.GetUserInfo(u.Uuid)
	if err != nil {
		t.Fatal(err)
	}
	if got.Online {
		t.Fatal("profile should report offline")
	}
}

func TestFindByEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "alice")

	got, err := svc.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if _, err := svc.FindByEmail("nobody@example.com"); !errorx.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
