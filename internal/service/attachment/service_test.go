package attachment

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"chitchat_server/internal/dao/memory"
	"chitchat_server/internal/model"
	"chitchat_server/internal/service/access"
	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

// fakeStore keeps blobs in a map and hands out fake links.
type fakeStore struct {
	blobs map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, objectKey string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.blobs[objectKey] = data
	return nil
}

func (f *fakeStore) PresignedGet(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	if _, ok := f.blobs[objectKey]; !ok {
		return "", errorx.New(errorx.CodeNotFound, "object not found")
	}
	return "https://blobs.test/" + objectKey, nil
}

func (f *fakeStore) Remove(_ context.Context, objectKey string) error {
	delete(f.blobs, objectKey)
	return nil
}

type fixture struct {
	svc   *Service
	store *memory.Store
	blobs *fakeStore
	msgId int64
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
	if err := store.Rooms().Create(&model.Room{
		Uuid: "room-1", Name: "general", IsGroup: true, CreatorId: "alice",
		Status: model.RoomStatusActive,
	}); err != nil {
		t.Fatal(err)
	}
	for _, user := range []string{"alice", "bob"} {
		if err := store.Participants().Create(&model.Participant{
			RoomUuid: "room-1", UserUuid: user, Role: model.RoleMember,
			Status: model.ParticipantStatusActive,
		}); err != nil {
			t.Fatal(err)
		}
	}
	const msgId = int64(1001)
	if err := store.Messages().Create(&model.Message{
		Uuid: msgId, RoomUuid: "room-1", SenderId: "bob", SenderName: "bob",
		Content: "see attached", Type: model.MessageTypeFile,
		SentAt: time.Now(), Status: model.MessageStatusActive,
	}); err != nil {
		t.Fatal(err)
	}
	blobs := newFakeStore()
	svc := NewService(store, access.NewService(store), blobs)
	return &fixture{svc: svc, store: store, blobs: blobs, msgId: msgId}
}

func upload(t *testing.T, f *fixture, caller string) string {
	t.Helper()
	content := []byte("report body")
	rsp, err := f.svc.Upload(context.Background(), caller, f.msgId,
		"report.pdf", "application/pdf", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return rsp.Uuid
}

func TestUpload(t *testing.T) {
	f := newFixture(t)

	id := upload(t, f, "bob")
	if id == "" {
		t.Fatal("missing attachment id")
	}
	if len(f.blobs.blobs) != 1 {
		t.Fatalf("expected 1 stored blob, got %d", len(f.blobs.blobs))
	}

	rows, err := f.svc.ListForMessage("alice", f.msgId)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].FileName != "report.pdf" || rows[0].FileSize != 11 {
		t.Fatalf("unexpected attachments: %+v", rows)
	}
}

func TestUploadValidation(t *testing.T) {
	f := newFixture(t)
	body := strings.NewReader("x")

	// Only the message sender may attach.
	if _, err := f.svc.Upload(context.Background(), "alice", f.msgId, "a.txt", "text/plain", 1, body); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("non-sender: expected unauthorized, got %v", err)
	}
	if _, err := f.svc.Upload(context.Background(), "bob", f.msgId, "", "text/plain", 1, body); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("empty name: expected invalid param, got %v", err)
	}
	if _, err := f.svc.Upload(context.Background(), "bob", f.msgId, "a.txt", "text/plain", constants.FILE_MAX_SIZE+1, body); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("oversize: expected invalid param, got %v", err)
	}
	if _, err := f.svc.Upload(context.Background(), "bob", 9999, "a.txt", "text/plain", 1, body); !errorx.IsNotFound(err) {
		t.Fatalf("unknown message: expected not found, got %v", err)
	}
	if len(f.blobs.blobs) != 0 {
		t.Fatalf("rejected uploads must not leave blobs: %d", len(f.blobs.blobs))
	}
}

func TestDownload(t *testing.T) {
	f := newFixture(t)
	id := upload(t, f, "bob")

	rsp, err := f.svc.Download(context.Background(), "alice", id)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !strings.HasPrefix(rsp.DownloadUrl, "https://blobs.test/") {
		t.Fatalf("missing download link: %+v", rsp)
	}

	// Outsiders cannot fetch a link.
	if _, err := f.svc.Download(context.Background(), "eve", id); errorx.GetCode(err) != errorx.CodeUnauthorized {
		t.Fatalf("outsider: expected unauthorized, got %v", err)
	}
}

func TestDownloadOfDeletedMessage(t *testing.T) {
	f := newFixture(t)
	id := upload(t, f, "bob")

	msg, err := f.store.Messages().FindByUuid(f.msgId)
	if err != nil {
		t.Fatal(err)
	}
	msg.Status = model.MessageStatusDeleted
	if err := f.store.Messages().Update(msg); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Download(context.Background(), "alice", id); !errorx.IsNotFound(err) {
		t.Fatalf("deleted message: expected not found, got %v", err)
	}
}
