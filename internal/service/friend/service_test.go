package friend

import (
	"testing"

	"chitchat_server/internal/dao/memory"
	"chitchat_server/internal/dto/respond"
	"chitchat_server/internal/model"
	"chitchat_server/pkg/errorx"
)

func newTestService(t *testing.T, users ...string) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, name := range users {
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
	return NewService(store), store
}

func TestSendRequest(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")

	req, err := svc.SendRequest("alice", "bob@example.com")
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if req.SenderId != "alice" {
		t.Fatalf("unexpected sender: %+v", req)
	}

	// Duplicate requests conflict, in both directions.
	if _, err := svc.SendRequest("alice", "bob@example.com"); errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("duplicate: expected conflict, got %v", err)
	}
	if _, err := svc.SendRequest("bob", "alice@example.com"); errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("reverse: expected conflict, got %v", err)
	}
}

func TestDuplicateEdgeConflictsAtStore(t *testing.T) {
	_, store := newTestService(t, "alice", "bob")

	first := &model.Contact{Uuid: "e1", UserId: "alice", FriendId: "bob", Status: model.ContactStatusPending}
	if err := store.Contacts().Create(first); err != nil {
		t.Fatal(err)
	}
	// Racing requests that slip past the existence check hit the unique
	// (user_id, friend_id) index.
	dup := &model.Contact{Uuid: "e2", UserId: "alice", FriendId: "bob", Status: model.ContactStatusPending}
	if err := store.Contacts().Create(dup); errorx.GetCode(err) != errorx.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	// The reverse direction is a distinct edge.
	rev := &model.Contact{Uuid: "e3", UserId: "bob", FriendId: "alice", Status: model.ContactStatusPending}
	if err := store.Contacts().Create(rev); err != nil {
		t.Fatalf("reverse edge: %v", err)
	}
}

func TestSendRequestValidation(t *testing.T) {
	svc, _ := newTestService(t, "alice")

	if _, err := svc.SendRequest("alice", "nobody@example.com"); !errorx.IsNotFound(err) {
		t.Fatalf("unknown email: expected not found, got %v", err)
	}
	if _, err := svc.SendRequest("alice", "alice@example.com"); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("self request: expected invalid param, got %v", err)
	}
}

func TestAcceptCreatesMutualFriendship(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")

	req, err := svc.SendRequest("alice", "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}

	// Only the recipient may accept.
	if err := svc.Accept("alice", req.Uuid); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("sender accept: expected unauthorized, got %v", err)
	}
	if err := svc.Accept("bob", req.Uuid); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	// Accepting twice is an invalid state.
	if err := svc.Accept("bob", req.Uuid); errorx.GetCode(err) != errorx.CodeInvalidState {
		t.Fatalf("repeat accept: expected invalid state, got %v", err)
	}

	// The friendship reads the same from both sides.
	for _, caller := range []string{"alice", "bob"} {
		friends, err := svc.ListFriends(caller)
		if err != nil {
			t.Fatal(err)
		}
		if len(friends) != 1 {
			t.Fatalf("%s should have 1 friend, got %d", caller, len(friends))
		}
	}
	status, err := svc.StatusBetween("alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != respond.FriendStatusFriends {
		t.Fatalf("expected FRIENDS, got %s", status.Status)
	}
}

func TestRejectClearsTheSlate(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")

	req, err := svc.SendRequest("alice", "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Reject("alice", req.Uuid); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("sender reject: expected unauthorized, got %v", err)
	}
	if err := svc.Reject("bob", req.Uuid); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	status, err := svc.StatusBetween("alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != respond.FriendStatusNone {
		t.Fatalf("expected NONE after reject, got %s", status.Status)
	}

	// Rejection leaves no tombstone: a fresh request goes through.
	if _, err := svc.SendRequest("alice", "bob@example.com"); err != nil {
		t.Fatalf("re-request after reject: %v", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")

	req, err := svc.SendRequest("alice", "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Accept("bob", req.Uuid); err != nil {
		t.Fatal(err)
	}

	if err := svc.RemoveFriend("alice", "bob"); err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	for _, caller := range []string{"alice", "bob"} {
		friends, err := svc.ListFriends(caller)
		if err != nil {
			t.Fatal(err)
		}
		if len(friends) != 0 {
			t.Fatalf("%s should have no friends, got %d", caller, len(friends))
		}
	}
	// Removing again is a no-op.
	if err := svc.RemoveFriend("alice", "bob"); err != nil {
		t.Fatalf("repeat remove should be a no-op, got %v", err)
	}
}

func TestListRequests(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob", "carol")

	if _, err := svc.SendRequest("alice", "carol@example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendRequest("bob", "carol@example.com"); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.ListRequests("carol")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("carol should see 2 requests, got %d", len(pending))
	}
	for _, p := range pending {
		if p.Sender.Uuid != p.SenderId {
			t.Fatalf("sender profile mismatch: %+v", p)
		}
	}

	// Senders see nothing pending addressed to them.
	mine, err := svc.ListRequests("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 0 {
		t.Fatalf("alice should see no requests, got %d", len(mine))
	}
}

func TestStatusBetweenDirections(t *testing.T) {
	svc, _ := newTestService(t, "alice", "bob")

	status, err := svc.StatusBetween("alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if status.Status != respond.FriendStatusNone {
		t.Fatalf("expected NONE, got %s", status.Status)
	}

	if _, err := svc.SendRequest("alice", "bob@example.com"); err != nil {
		t.Fatal(err)
	}

	fromSender, err := svc.StatusBetween("alice", "bob")
	if err != nil {
		t.Fatal(err)
	}
	if fromSender.Status != respond.FriendStatusPending {
		t.Fatalf("sender side: expected PENDING, got %s", fromSender.Status)
	}
	fromReceiver, err := svc.StatusBetween("bob", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if fromReceiver.Status != respond.FriendStatusReceived {
		t.Fatalf("receiver side: expected RECEIVED, got %s", fromReceiver.Status)
	}
}

func TestListFriendsSkipsDisabledUsers(t *testing.T) {
	svc, store := newTestService(t, "alice", "bob")

	req, err := svc.SendRequest("alice", "bob@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Accept("bob", req.Uuid); err != nil {
		t.Fatal(err)
	}

	bob, err := store.Users().FindByUuid("bob")
	if err != nil {
		t.Fatal(err)
	}
	bob.Status = model.UserStatusDisabled
	if err := store.Users().Update(bob); err != nil {
		t.Fatal(err)
	}

	friends, err := svc.ListFriends("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(friends) != 0 {
		t.Fatalf("disabled friends should be hidden, got %+v", friends)
	}
}
