package access

import (
	"testing"

	"chitchat_server/internal/dao/memory"
	"chitchat_server/internal/model"
)

func seed(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	if err := store.Rooms().Create(&model.Room{
		Uuid: "room-1", Name: "general", IsGroup: true, CreatorId: "alice",
		Status: model.RoomStatusActive,
	}); err != nil {
		t.Fatal(err)
	}
	members := []struct {
		user string
		role int8
	}{{"alice", model.RoleAdmin}, {"bob", model.RoleMember}}
	for _, m := range members {
		if err := store.Participants().Create(&model.Participant{
			RoomUuid: "room-1", UserUuid: m.user, Role: m.role,
			Status: model.ParticipantStatusActive,
		}); err != nil {
			t.Fatal(err)
		}
	}
	return NewService(store), store
}

func TestCanAccessRoom(t *testing.T) {
	svc, store := seed(t)

	for _, user := range []string{"alice", "bob"} {
		ok, err := svc.CanAccessRoom(user, "room-1")
		if err != nil || !ok {
			t.Fatalf("%s should access room-1: ok=%v err=%v", user, ok, err)
		}
	}
	if ok, err := svc.CanAccessRoom("eve", "room-1"); err != nil || ok {
		t.Fatalf("outsider: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.CanAccessRoom("alice", "missing"); err != nil || ok {
		t.Fatalf("missing room: ok=%v err=%v", ok, err)
	}

	// Removed participants lose access.
	if err := store.Participants().Deactivate("room-1", "bob"); err != nil {
		t.Fatal(err)
	}
	if ok, err := svc.CanAccessRoom("bob", "room-1"); err != nil || ok {
		t.Fatalf("removed member: ok=%v err=%v", ok, err)
	}
}

func TestCanAccessRoomDisabledRoom(t *testing.T) {
	svc, store := seed(t)

	room, err := store.Rooms().FindByUuid("room-1")
	if err != nil {
		t.Fatal(err)
	}
	room.Status = model.RoomStatusDisabled
	if err := store.Rooms().Update(room); err != nil {
		t.Fatal(err)
	}
	if ok, err := svc.CanAccessRoom("alice", "room-1"); err != nil || ok {
		t.Fatalf("disabled room: ok=%v err=%v", ok, err)
	}
}

func TestCanModerate(t *testing.T) {
	svc, _ := seed(t)

	if ok, err := svc.CanModerate("alice", "room-1"); err != nil || !ok {
		t.Fatalf("admin: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.CanModerate("bob", "room-1"); err != nil || ok {
		t.Fatalf("member: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.CanModerate("eve", "room-1"); err != nil || ok {
		t.Fatalf("outsider: ok=%v err=%v", ok, err)
	}
}

func TestCanModerateIsRoleOnly(t *testing.T) {
	svc, store := seed(t)

	// The creator's standing comes from the admin membership alone: once
	// removed from the room, moderation is gone.
	if err := store.Participants().Deactivate("room-1", "alice"); err != nil {
		t.Fatal(err)
	}
	if ok, err := svc.CanModerate("alice", "room-1"); err != nil || ok {
		t.Fatalf("removed creator: ok=%v err=%v", ok, err)
	}

	// Direct rooms hold two plain members and no moderators at all.
	if err := store.Rooms().Create(&model.Room{
		Uuid: "dm-1", Name: "alice:bob", IsGroup: false, CreatorId: "alice",
		Status: model.RoomStatusActive,
	}); err != nil {
		t.Fatal(err)
	}
	for _, user := range []string{"alice", "bob"} {
		if err := store.Participants().Create(&model.Participant{
			RoomUuid: "dm-1", UserUuid: user, Role: model.RoleMember,
			Status: model.ParticipantStatusActive,
		}); err != nil {
			t.Fatal(err)
		}
	}
	for _, user := range []string{"alice", "bob"} {
		if ok, err := svc.CanModerate(user, "dm-1"); err != nil || ok {
			t.Fatalf("%s in direct room: ok=%v err=%v", user, ok, err)
		}
	}
}

func TestCanMutateMessage(t *testing.T) {
	svc, _ := seed(t)

	msg := &model.Message{Uuid: 1, RoomUuid: "room-1", SenderId: "bob"}

	// Sender may edit and delete.
	for _, del := range []bool{false, true} {
		if ok, err := svc.CanMutateMessage("bob", msg, del); err != nil || !ok {
			t.Fatalf("sender delete=%v: ok=%v err=%v", del, ok, err)
		}
	}
	// Admin may delete but not edit.
	if ok, err := svc.CanMutateMessage("alice", msg, false); err != nil || ok {
		t.Fatalf("admin edit: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.CanMutateMessage("alice", msg, true); err != nil || !ok {
		t.Fatalf("admin delete: ok=%v err=%v", ok, err)
	}
	// Outsiders may do neither.
	if ok, err := svc.CanMutateMessage("eve", msg, true); err != nil || ok {
		t.Fatalf("outsider delete: ok=%v err=%v", ok, err)
	}
}
