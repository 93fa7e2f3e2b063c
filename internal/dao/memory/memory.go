// Package memory provides an in-memory Repositories implementation with the
// same visibility and ordering semantics as the gorm one. It backs the
// service tests, the same way the handler smoke tests stub at the service
// boundary.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"chitchat_server/internal/dao/mysql/repository"
	"chitchat_server/internal/model"
	"chitchat_server/pkg/errorx"
)

// Store holds all tables behind one mutex; Transaction holds the lock for the
// whole callback, which gives the same atomicity the database transaction
// provides in production.
type Store struct {
	mu sync.Mutex

	users        []*model.User
	rooms        []*model.Room
	participants []*model.Participant
	messages     []*model.Message
	contacts     []*model.Contact
	attachments  []*model.MessageAttachment

	nextID uint
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

var _ repository.Repositories = (*Store)(nil)

func (s *Store) Users() repository.UserRepository               { return (*userRepo)(s) }
func (s *Store) Rooms() repository.RoomRepository               { return (*roomRepo)(s) }
func (s *Store) Participants() repository.ParticipantRepository { return (*participantRepo)(s) }
func (s *Store) Messages() repository.MessageRepository         { return (*messageRepo)(s) }
func (s *Store) Contacts() repository.ContactRepository         { return (*contactRepo)(s) }
func (s *Store) Attachments() repository.AttachmentRepository   { return (*attachmentRepo)(s) }

// Transaction serializes the callback against all other operations.
func (s *Store) Transaction(fn func(tx repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(txStore{s})
}

// txStore exposes the same tables without re-locking, for use inside
// Transaction callbacks.
type txStore struct{ s *Store }

func (t txStore) Users() repository.UserRepository               { return txUserRepo{t.s} }
func (t txStore) Rooms() repository.RoomRepository               { return txRoomRepo{t.s} }
func (t txStore) Participants() repository.ParticipantRepository { return txParticipantRepo{t.s} }
func (t txStore) Messages() repository.MessageRepository         { return txMessageRepo{t.s} }
func (t txStore) Contacts() repository.ContactRepository         { return txContactRepo{t.s} }
func (t txStore) Attachments() repository.AttachmentRepository   { return txAttachmentRepo{t.s} }
func (t txStore) Transaction(fn func(tx repository.Repositories) error) error {
	return fn(t)
}

func notFound(what string) error {
	return errorx.New(errorx.CodeNotFound, what+" not found")
}

func duplicate(what string) error {
	return errorx.New(errorx.CodeConflict, what+" already exists")
}

func (s *Store) stamp() time.Time {
	s.nextID++
	return time.Now()
}

// ---- users ----

type userRepo Store

func (r *userRepo) Create(u *model.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txUserRepo{s}).Create(u)
}

func (r *userRepo) FindByUuid(uuid string) (*model.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txUserRepo{s}).FindByUuid(uuid)
}

func (r *userRepo) FindByUuids(uuids []string) ([]model.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txUserRepo{s}).FindByUuids(uuids)
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txUserRepo{s}).FindByEmail(email)
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txUserRepo{s}).FindByUsername(username)
}

func (r *userRepo) Update(u *model.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&txUserRepo{s}).Update(u)
}

type txUserRepo struct{ s *Store }

func (r txUserRepo) Create(u *model.User) error {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.MinCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	cp := *u
	cp.CreatedAt = r.s.stamp()
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r txUserRepo) FindByUuid(uuid string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Uuid == uuid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (r txUserRepo) FindByUuids(uuids []string) ([]model.User, error) {
	want := map[string]bool{}
	for _, id := range uuids {
		want[id] = true
	}
	var out []model.User
	for _, u := range r.s.users {
		if want[u.Uuid] {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r txUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (r txUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, notFound("user")
}

func (r txUserRepo) Update(u *model.User) error {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.MinCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	for i, cur := range r.s.users {
		if cur.Uuid == u.Uuid {
			cp := *u
			r.s.users[i] = &cp
			return nil
		}
	}
	return notFound("user")
}

// ---- rooms ----

type roomRepo Store

func (r *roomRepo) Create(room *model.Room) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txRoomRepo{s}).Create(room)
}

func (r *roomRepo) FindByUuid(uuid string) (*model.Room, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txRoomRepo{s}).FindByUuid(uuid)
}

func (r *roomRepo) FindByUuids(uuids []string) ([]model.Room, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txRoomRepo{s}).FindByUuids(uuids)
}

func (r *roomRepo) FindActiveDirectRoom(userA, userB string) (*model.Room, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txRoomRepo{s}).FindActiveDirectRoom(userA, userB)
}

func (r *roomRepo) Update(room *model.Room) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txRoomRepo{s}).Update(room)
}

type txRoomRepo struct{ s *Store }

func (r txRoomRepo) Create(room *model.Room) error {
	// Mirrors the unique index on direct_key; NULL keys never collide.
	if room.DirectKey.Valid {
		for _, cur := range r.s.rooms {
			if cur.DirectKey.Valid && cur.DirectKey.String == room.DirectKey.String {
				return duplicate("direct room")
			}
		}
	}
	cp := *room
	cp.CreatedAt = r.s.stamp()
	room.CreatedAt = cp.CreatedAt
	r.s.rooms = append(r.s.rooms, &cp)
	return nil
}

func (r txRoomRepo) FindByUuid(uuid string) (*model.Room, error) {
	for _, room := range r.s.rooms {
		if room.Uuid == uuid {
			cp := *room
			return &cp, nil
		}
	}
	return nil, notFound("room")
}

func (r txRoomRepo) FindByUuids(uuids []string) ([]model.Room, error) {
	want := map[string]bool{}
	for _, id := range uuids {
		want[id] = true
	}
	var out []model.Room
	for _, room := range r.s.rooms {
		if want[room.Uuid] {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r txRoomRepo) FindActiveDirectRoom(userA, userB string) (*model.Room, error) {
	for _, room := range r.s.rooms {
		if room.IsGroup || room.Status != model.RoomStatusActive {
			continue
		}
		if r.isActiveMember(room.Uuid, userA) && r.isActiveMember(room.Uuid, userB) {
			cp := *room
			return &cp, nil
		}
	}
	return nil, nil
}

func (r txRoomRepo) isActiveMember(roomUuid, userUuid string) bool {
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.UserUuid == userUuid && p.Status == model.ParticipantStatusActive {
			return true
		}
	}
	return false
}

func (r txRoomRepo) Update(room *model.Room) error {
	for i, cur := range r.s.rooms {
		if cur.Uuid == room.Uuid {
			cp := *room
			r.s.rooms[i] = &cp
			return nil
		}
	}
	return notFound("room")
}

// ---- participants ----

type participantRepo Store

func (r *participantRepo) Create(p *model.Participant) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txParticipantRepo{s}).Create(p)
}

func (r *participantRepo) FindActive(roomUuid, userUuid string) (*model.Participant, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txParticipantRepo{s}).FindActive(roomUuid, userUuid)
}

func (r *participantRepo) FindActiveByRoom(roomUuid string) ([]model.Participant, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txParticipantRepo{s}).FindActiveByRoom(roomUuid)
}

func (r *participantRepo) FindActiveByUser(userUuid string) ([]model.Participant, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txParticipantRepo{s}).FindActiveByUser(userUuid)
}

func (r *participantRepo) CountActiveByRoom(roomUuid string) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txParticipantRepo{s}).CountActiveByRoom(roomUuid)
}

func (r *participantRepo) Deactivate(roomUuid, userUuid string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txParticipantRepo{s}).Deactivate(roomUuid, userUuid)
}

type txParticipantRepo struct{ s *Store }

func (r txParticipantRepo) Create(p *model.Participant) error {
	cp := *p
	cp.CreatedAt = r.s.stamp()
	r.s.participants = append(r.s.participants, &cp)
	return nil
}

func (r txParticipantRepo) FindActive(roomUuid, userUuid string) (*model.Participant, error) {
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.UserUuid == userUuid && p.Status == model.ParticipantStatusActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, notFound("participant")
}

func (r txParticipantRepo) FindActiveByRoom(roomUuid string) ([]model.Participant, error) {
	var out []model.Participant
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.Status == model.ParticipantStatusActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r txParticipantRepo) FindActiveByUser(userUuid string) ([]model.Participant, error) {
	var out []model.Participant
	for _, p := range r.s.participants {
		if p.UserUuid == userUuid && p.Status == model.ParticipantStatusActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r txParticipantRepo) CountActiveByRoom(roomUuid string) (int64, error) {
	var n int64
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.Status == model.ParticipantStatusActive {
			n++
		}
	}
	return n, nil
}

func (r txParticipantRepo) Deactivate(roomUuid, userUuid string) error {
	for _, p := range r.s.participants {
		if p.RoomUuid == roomUuid && p.UserUuid == userUuid && p.Status == model.ParticipantStatusActive {
			p.Status = model.ParticipantStatusRemoved
		}
	}
	return nil
}

// ---- messages ----

type messageRepo Store

func (r *messageRepo) Create(m *model.Message) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txMessageRepo{s}).Create(m)
}

func (r *messageRepo) FindByUuid(uuid int64) (*model.Message, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txMessageRepo{s}).FindByUuid(uuid)
}

func (r *messageRepo) PageByRoom(roomUuid string, page, size int) ([]model.Message, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txMessageRepo{s}).PageByRoom(roomUuid, page, size)
}

func (r *messageRepo) SearchInRooms(roomUuids []string, query string, page, size int) ([]model.Message, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txMessageRepo{s}).SearchInRooms(roomUuids, query, page, size)
}

func (r *messageRepo) Update(m *model.Message) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txMessageRepo{s}).Update(m)
}

type txMessageRepo struct{ s *Store }

func (r txMessageRepo) Create(m *model.Message) error {
	cp := *m
	cp.CreatedAt = r.s.stamp()
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

func (r txMessageRepo) FindByUuid(uuid int64) (*model.Message, error) {
	for _, m := range r.s.messages {
		if m.Uuid == uuid {
			cp := *m
			return &cp, nil
		}
	}
	return nil, notFound("message")
}

func sortBySentAtDesc(ms []model.Message) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].SentAt.Equal(ms[j].SentAt) {
			return ms[i].Uuid > ms[j].Uuid
		}
		return ms[i].SentAt.After(ms[j].SentAt)
	})
}

func paginate(ms []model.Message, page, size int) []model.Message {
	start := page * size
	if start >= len(ms) {
		return []model.Message{}
	}
	end := start + size
	if end > len(ms) {
		end = len(ms)
	}
	return ms[start:end]
}

func (r txMessageRepo) PageByRoom(roomUuid string, page, size int) ([]model.Message, error) {
	var out []model.Message
	for _, m := range r.s.messages {
		if m.RoomUuid == roomUuid && m.Status == model.MessageStatusActive {
			out = append(out, *m)
		}
	}
	sortBySentAtDesc(out)
	return paginate(out, page, size), nil
}

func (r txMessageRepo) SearchInRooms(roomUuids []string, query string, page, size int) ([]model.Message, error) {
	want := map[string]bool{}
	for _, id := range roomUuids {
		want[id] = true
	}
	q := strings.ToLower(query)
	var out []model.Message
	for _, m := range r.s.messages {
		if want[m.RoomUuid] && m.Status == model.MessageStatusActive &&
			strings.Contains(strings.ToLower(m.Content), q) {
			out = append(out, *m)
		}
	}
	sortBySentAtDesc(out)
	return paginate(out, page, size), nil
}

func (r txMessageRepo) Update(m *model.Message) error {
	for i, cur := range r.s.messages {
		if cur.Uuid == m.Uuid {
			cp := *m
			r.s.messages[i] = &cp
			return nil
		}
	}
	return notFound("message")
}

// ---- contacts ----

type contactRepo Store

func (r *contactRepo) Create(c *model.Contact) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).Create(c)
}

func (r *contactRepo) FindByUuid(uuid string) (*model.Contact, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).FindByUuid(uuid)
}

func (r *contactRepo) FindPair(userId, friendId string) (*model.Contact, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).FindPair(userId, friendId)
}

func (r *contactRepo) FindBetween(a, b string) ([]model.Contact, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).FindBetween(a, b)
}

func (r *contactRepo) FindAcceptedInvolving(userId string) ([]model.Contact, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).FindAcceptedInvolving(userId)
}

func (r *contactRepo) FindPendingTo(userId string) ([]model.Contact, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).FindPendingTo(userId)
}

func (r *contactRepo) Update(c *model.Contact) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).Update(c)
}

func (r *contactRepo) DeletePair(userId, friendId string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txContactRepo{s}).DeletePair(userId, friendId)
}

type txContactRepo struct{ s *Store }

func (r txContactRepo) Create(c *model.Contact) error {
	// Mirrors the unique index on (user_id, friend_id).
	for _, cur := range r.s.contacts {
		if cur.UserId == c.UserId && cur.FriendId == c.FriendId {
			return duplicate("contact edge")
		}
	}
	cp := *c
	cp.CreatedAt = r.s.stamp()
	c.CreatedAt = cp.CreatedAt
	r.s.contacts = append(r.s.contacts, &cp)
	return nil
}

func (r txContactRepo) FindByUuid(uuid string) (*model.Contact, error) {
	for _, c := range r.s.contacts {
		if c.Uuid == uuid {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("contact")
}

func (r txContactRepo) FindPair(userId, friendId string) (*model.Contact, error) {
	for _, c := range r.s.contacts {
		if c.UserId == userId && c.FriendId == friendId {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound("contact")
}

func (r txContactRepo) FindBetween(a, b string) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range r.s.contacts {
		if (c.UserId == a && c.FriendId == b) || (c.UserId == b && c.FriendId == a) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r txContactRepo) FindAcceptedInvolving(userId string) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range r.s.contacts {
		if (c.UserId == userId || c.FriendId == userId) && c.Status == model.ContactStatusAccepted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r txContactRepo) FindPendingTo(userId string) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range r.s.contacts {
		if c.FriendId == userId && c.Status == model.ContactStatusPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r txContactRepo) Update(c *model.Contact) error {
	for i, cur := range r.s.contacts {
		if cur.Uuid == c.Uuid {
			cp := *c
			r.s.contacts[i] = &cp
			return nil
		}
	}
	return notFound("contact")
}

func (r txContactRepo) DeletePair(userId, friendId string) error {
	kept := r.s.contacts[:0]
	for _, c := range r.s.contacts {
		if c.UserId == userId && c.FriendId == friendId {
			continue
		}
		kept = append(kept, c)
	}
	r.s.contacts = kept
	return nil
}

// ---- attachments ----

type attachmentRepo Store

func (r *attachmentRepo) Create(a *model.MessageAttachment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txAttachmentRepo{s}).Create(a)
}

func (r *attachmentRepo) FindByUuid(uuid string) (*model.MessageAttachment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txAttachmentRepo{s}).FindByUuid(uuid)
}

func (r *attachmentRepo) FindByMessage(messageUuid int64) ([]model.MessageAttachment, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return (txAttachmentRepo{s}).FindByMessage(messageUuid)
}

type txAttachmentRepo struct{ s *Store }

func (r txAttachmentRepo) Create(a *model.MessageAttachment) error {
	cp := *a
	cp.CreatedAt = r.s.stamp()
	r.s.attachments = append(r.s.attachments, &cp)
	return nil
}

func (r txAttachmentRepo) FindByUuid(uuid string) (*model.MessageAttachment, error) {
	for _, a := range r.s.attachments {
		if a.Uuid == uuid {
			cp := *a
			return &cp, nil
		}
	}
	return nil, notFound("attachment")
}

func (r txAttachmentRepo) FindByMessage(messageUuid int64) ([]model.MessageAttachment, error) {
	var out []model.MessageAttachment
	for _, a := range r.s.attachments {
		if a.MessageUuid == messageUuid {
			out = append(out, *a)
		}
	}
	return out, nil
}
