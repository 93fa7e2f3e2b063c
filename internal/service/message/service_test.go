package message

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"chitchat_server/internal/dao/memory"
	"chitchat_server/internal/dto/request"
	"chitchat_server/internal/model"
	"chitchat_server/internal/service/access"
	"chitchat_server/internal/service/chat"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []chat.Event
}

func (p *capturePublisher) Publish(e chat.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) last() (chat.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return chat.Event{}, false
	}
	return p.events[len(p.events)-1], true
}

// fixture seeds two users sharing a group room, with eve outside it.
type fixture struct {
	svc    *Service
	store  *memory.Store
	events *capturePublisher
	roomId string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	for _, name := range []string{"alice", "bob", "eve"} {
		err := store.Users().Create(&model.User{
			Uuid:        name,
			Username:    name,
			Email:       name + "@example.com",
			DisplayName: name,
			RawPassword: "password123",
			Status:      model.UserStatusActive,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	roomId := "room-1"
	if err := store.Rooms().Create(&model.Room{
		Uuid: roomId, Name: "general", IsGroup: true, CreatorId: "alice",
		Status: model.RoomStatusActive,
	}); err != nil {
		t.Fatal(err)
	}
	for _, m := range []struct {
		user string
		role int8
	}{{"alice", model.RoleAdmin}, {"bob", model.RoleMember}} {
		if err := store.Participants().Create(&model.Participant{
			RoomUuid: roomId, UserUuid: m.user, Role: m.role,
			Status: model.ParticipantStatusActive,
		}); err != nil {
			t.Fatal(err)
		}
	}
	events := &capturePublisher{}
	svc := NewService(store, access.NewService(store), events)
	return &fixture{svc: svc, store: store, events: events, roomId: roomId}
}

func TestSend(t *testing.T) {
	f := newFixture(t)

	rsp, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if rsp.Content != "hello" || rsp.SenderId != "bob" || rsp.Type != "TEXT" {
		t.Fatalf("unexpected respond: %+v", rsp)
	}

	e, ok := f.events.last()
	if !ok || e.Kind != chat.EventMessageSent || e.RoomId != f.roomId {
		t.Fatalf("expected MESSAGE_SENT event, got %+v", e)
	}
}

func TestSendValidation(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: ""}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("empty content: expected invalid param, got %v", err)
	}
	long := make([]rune, 1001)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: string(long)}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("long content: expected invalid param, got %v", err)
	}
	if _, err := f.svc.Send("eve", f.roomId, request.SendMessageRequest{Content: "hi"}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("outsider: expected unauthorized, got %v", err)
	}
}

func TestEditWithinWindow(t *testing.T) {
	f := newFixture(t)

	sent, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "draft"})
	if err != nil {
		t.Fatal(err)
	}
	id := mustParseId(t, sent.Uuid)

	edited, err := f.svc.Edit("bob", id, request.EditMessageRequest{Content: "final"})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.Content != "final" || edited.EditedAt == nil {
		t.Fatalf("unexpected respond: %+v", edited)
	}

	// Only the sender may edit.
	if _, err := f.svc.Edit("alice", id, request.EditMessageRequest{Content: "hijack"}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestEditWindowExpires(t *testing.T) {
	f := newFixture(t)

	sent, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "old news"})
	if err != nil {
		t.Fatal(err)
	}
	id := mustParseId(t, sent.Uuid)

	// Step the clock 24h and a minute past the send.
	f.svc.now = func() time.Time { return time.Now().Add(24*time.Hour + time.Minute) }

	_, err = f.svc.Edit("bob", id, request.EditMessageRequest{Content: "too late"})
	if errorx.GetCode(err) != errorx.CodeEditWindowExpired {
		t.Fatalf("expected edit window expired, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	sent, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "oops"})
	if err != nil {
		t.Fatal(err)
	}
	id := mustParseId(t, sent.Uuid)

	// eve may not delete.
	if err := f.svc.Delete("eve", id); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	// Room admin may delete another user's message.
	if err := f.svc.Delete("alice", id); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	// Second delete is a no-op.
	if err := f.svc.Delete("bob", id); err != nil {
		t.Fatalf("repeat delete should be a no-op, got %v", err)
	}
	// Deleted messages cannot be edited.
	if _, err := f.svc.Edit("bob", id, request.EditMessageRequest{Content: "revive"}); !errorx.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEditWindowClosesAtBoundary(t *testing.T) {
	f := newFixture(t)

	base := time.Now()
	f.svc.now = func() time.Time { return base }
	sent, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "draft"})
	if err != nil {
		t.Fatal(err)
	}
	id := mustParseId(t, sent.Uuid)

	// Just inside the window the edit still goes through.
	f.svc.now = func() time.Time { return base.Add(constants.EDIT_WINDOW - time.Second) }
	if _, err := f.svc.Edit("bob", id, request.EditMessageRequest{Content: "still fine"}); err != nil {
		t.Fatalf("edit inside window: %v", err)
	}

	// At exactly the window the edit is rejected.
	f.svc.now = func() time.Time { return base.Add(constants.EDIT_WINDOW) }
	if _, err := f.svc.Edit("bob", id, request.EditMessageRequest{Content: "too late"}); errorx.GetCode(err) != errorx.CodeEditWindowExpired {
		t.Fatalf("expected edit window expired, got %v", err)
	}
}

func TestModeratorDeleteReturnsPromptly(t *testing.T) {
	f := newFixture(t)

	sent, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "spam"})
	if err != nil {
		t.Fatal(err)
	}
	id := mustParseId(t, sent.Uuid)

	// The moderation check runs inside the delete transaction, so it must
	// use the transaction's repositories rather than opening new reads.
	done := make(chan error, 1)
	go func() { done <- f.svc.Delete("alice", id) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("moderator delete: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("delete did not return")
	}
}

func TestDeleteInDirectRoomIsSenderOnly(t *testing.T) {
	f := newFixture(t)

	dmId := "dm-1"
	if err := f.store.Rooms().Create(&model.Room{
		Uuid: dmId, Name: "alice:bob", IsGroup: false, CreatorId: "alice",
		Status: model.RoomStatusActive,
	}); err != nil {
		t.Fatal(err)
	}
	for _, user := range []string{"alice", "bob"} {
		if err := f.store.Participants().Create(&model.Participant{
			RoomUuid: dmId, UserUuid: user, Role: model.RoleMember,
			Status: model.ParticipantStatusActive,
		}); err != nil {
			t.Fatal(err)
		}
	}

	sent, err := f.svc.Send("bob", dmId, request.SendMessageRequest{Content: "private"})
	if err != nil {
		t.Fatal(err)
	}
	id := mustParseId(t, sent.Uuid)

	// Opening the room grants no moderator standing over the other side.
	if err := f.svc.Delete("alice", id); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("peer delete: expected unauthorized, got %v", err)
	}
	if err := f.svc.Delete("bob", id); err != nil {
		t.Fatalf("sender delete: %v", err)
	}
}

func TestPageOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)

	for _, text := range []string{"first", "second", "third"} {
		if _, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: text}); err != nil {
			t.Fatal(err)
		}
	}

	page, err := f.svc.Page("alice", f.roomId, request.PageRequest{Page: 0, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(page.Messages))
	}
	if page.Messages[0].Content != "third" || page.Messages[1].Content != "second" {
		t.Fatalf("wrong order: %q, %q", page.Messages[0].Content, page.Messages[1].Content)
	}

	rest, err := f.svc.Page("alice", f.roomId, request.PageRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(rest.Messages) != 1 || rest.Messages[0].Content != "first" {
		t.Fatalf("wrong second page: %+v", rest.Messages)
	}
}

func TestPageExcludesDeleted(t *testing.T) {
	f := newFixture(t)

	keep, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "keep"})
	if err != nil {
		t.Fatal(err)
	}
	gone, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: "gone"})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Delete("bob", mustParseId(t, gone.Uuid)); err != nil {
		t.Fatal(err)
	}

	page, err := f.svc.Page("bob", f.roomId, request.PageRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Messages) != 1 || page.Messages[0].Uuid != keep.Uuid {
		t.Fatalf("expected only the kept message, got %+v", page.Messages)
	}
}

func TestSearch(t *testing.T) {
	f := newFixture(t)

	for _, text := range []string{"deploy plan", "lunch plans", "unrelated"} {
		if _, err := f.svc.Send("bob", f.roomId, request.SendMessageRequest{Content: text}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := f.svc.Search("alice", request.SearchRequest{Query: "PLAN"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("case-insensitive search should match 2, got %d", len(got.Messages))
	}

	// Blank query is rejected.
	if _, err := f.svc.Search("alice", request.SearchRequest{Query: "   "}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param, got %v", err)
	}

	// eve participates nowhere, so the all-rooms search is empty.
	empty, err := f.svc.Search("eve", request.SearchRequest{Query: "plan"})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Messages) != 0 {
		t.Fatalf("outsider search should be empty, got %+v", empty.Messages)
	}

	// Scoped search on a room eve cannot read is rejected.
	if _, err := f.svc.Search("eve", request.SearchRequest{Query: "plan", RoomId: f.roomId}); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func mustParseId(t *testing.T, s string) int64 {
	t.Helper()
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("bad message id %q: %v", s, err)
	}
	return id
}
