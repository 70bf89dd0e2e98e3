package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
)

// memStore is an in-memory repository.Store for service tests. InTx runs the
// callback against the same store; tests only exercise paths where failures
// happen before any write, so rollback fidelity is not needed.
type memStore struct {
	users    map[int64]*model.User
	slots    map[int64]*model.TimeSlot
	requests map[int64]*model.Request
	sessions map[int64]*model.Session
	tokens   []*model.TokenEntry
	credits  []*model.CreditEntry
	threads  map[int64]*model.ChatThread
	messages []*model.Message
	ingests  []*model.TranscriptIngest
	courses  map[int64]map[string]*model.UserCourse
	nextID   int64
	now      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*model.User{},
		slots:    map[int64]*model.TimeSlot{},
		requests: map[int64]*model.Request{},
		sessions: map[int64]*model.Session{},
		threads:  map[int64]*model.ChatThread{},
		courses:  map[int64]map[string]*model.UserCourse{},
		now:      time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) InTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *memStore) Users() repository.UserRepo             { return &memUsers{s} }
func (s *memStore) Slots() repository.SlotRepo             { return &memSlots{s} }
func (s *memStore) Requests() repository.RequestRepo       { return &memRequests{s} }
func (s *memStore) Sessions() repository.SessionRepo       { return &memSessions{s} }
func (s *memStore) Ledger() repository.LedgerRepo          { return &memLedger{s} }
func (s *memStore) Chat() repository.ChatRepo              { return &memChat{s} }
func (s *memStore) Transcripts() repository.TranscriptRepo { return &memTranscripts{s} }
func (s *memStore) Courses() repository.CourseRepo         { return &memCourses{s} }

type memUsers struct{ s *memStore }

func (r *memUsers) Create(ctx context.Context, user *model.User) error {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = r.s.now
	r.s.users[user.ID] = user
	return nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.s.users[id], nil
}

type memSlots struct{ s *memStore }

func (r *memSlots) Create(ctx context.Context, slot *model.TimeSlot) error {
	slot.ID = r.s.id()
	slot.CreatedAt = r.s.now
	r.s.slots[slot.ID] = slot
	return nil
}

func (r *memSlots) GetByID(ctx context.Context, id int64) (*model.TimeSlot, error) {
	return r.s.slots[id], nil
}

func (r *memSlots) Update(ctx context.Context, slot *model.TimeSlot) error {
	r.s.slots[slot.ID] = slot
	return nil
}

func (r *memSlots) Delete(ctx context.Context, id int64) error {
	delete(r.s.slots, id)
	return nil
}

func (r *memSlots) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.TimeSlot, error) {
	var slots []*model.TimeSlot
	for _, slot := range r.s.slots {
		if slot.TeacherID == teacherID {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

func (r *memSlots) ListActiveByTeacherDay(ctx context.Context, teacherID int64, day model.DayOfWeek) ([]*model.TimeSlot, error) {
	var slots []*model.TimeSlot
	for _, slot := range r.s.slots {
		if slot.TeacherID == teacherID && slot.Day == day && slot.Active {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

func (r *memSlots) ListAvailable(ctx context.Context, slotType model.SlotType, query string) ([]*model.TimeSlot, error) {
	var slots []*model.TimeSlot
	for _, slot := range r.s.slots {
		if !slot.Active {
			continue
		}
		if slotType != "" && slot.Type != slotType {
			continue
		}
		live, _ := r.HasLiveBooking(ctx, slot.ID)
		if live {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots, nil
}

func (r *memSlots) HasLiveBooking(ctx context.Context, slotID int64) (bool, error) {
	for _, req := range r.s.requests {
		if req.TimeSlotID != nil && *req.TimeSlotID == slotID && req.Status == model.RequestStatusPending {
			return true, nil
		}
	}
	for _, sess := range r.s.sessions {
		if sess.TimeSlotID != nil && *sess.TimeSlotID == slotID && !sess.Done() {
			return true, nil
		}
	}
	return false, nil
}

type memRequests struct{ s *memStore }

func (r *memRequests) Create(ctx context.Context, req *model.Request) error {
	req.ID = r.s.id()
	req.CreatedAt = r.s.now
	req.UpdatedAt = r.s.now
	stored := *req
	stored.Session = nil
	stored.TimeSlot = nil
	r.s.requests[req.ID] = &stored
	return nil
}

func (r *memRequests) GetByID(ctx context.Context, id int64) (*model.Request, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *req
	return &copied, nil
}

func (r *memRequests) HasActiveBetween(ctx context.Context, fromUserID, toUserID int64) (bool, error) {
	for _, req := range r.s.requests {
		if req.FromUserID != fromUserID || req.ToUserID != toUserID {
			continue
		}
		if req.Status == model.RequestStatusPending {
			return true, nil
		}
		if req.Status == model.RequestStatusAccepted && req.SessionID != nil {
			if sess := r.s.sessions[*req.SessionID]; sess != nil && !sess.Done() {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memRequests) MarkAccepted(ctx context.Context, id, sessionID int64) error {
	req := r.s.requests[id]
	req.Status = model.RequestStatusAccepted
	req.SessionID = &sessionID
	req.UpdatedAt = r.s.now
	return nil
}

func (r *memRequests) MarkDeclined(ctx context.Context, id int64) error {
	req := r.s.requests[id]
	req.Status = model.RequestStatusDeclined
	req.UpdatedAt = r.s.now
	return nil
}

func (r *memRequests) ListInbox(ctx context.Context, toUserID int64) ([]*model.Request, error) {
	return r.list(func(req *model.Request) bool { return req.ToUserID == toUserID }), nil
}

func (r *memRequests) ListSent(ctx context.Context, fromUserID int64) ([]*model.Request, error) {
	return r.list(func(req *model.Request) bool { return req.FromUserID == fromUserID }), nil
}

func (r *memRequests) list(match func(*model.Request) bool) []*model.Request {
	var requests []*model.Request
	for _, req := range r.s.requests {
		if !match(req) {
			continue
		}
		if req.SessionID != nil {
			if sess := r.s.sessions[*req.SessionID]; sess != nil && sess.Done() {
				continue
			}
		}
		requests = append(requests, req)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return requests
}

type memSessions struct{ s *memStore }

func (r *memSessions) Create(ctx context.Context, session *model.Session) error {
	session.ID = r.s.id()
	session.CreatedAt = r.s.now
	r.s.sessions[session.ID] = session
	return nil
}

func (r *memSessions) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (r *memSessions) SetSchedule(ctx context.Context, id int64, startAt, endAt time.Time) error {
	sess := r.s.sessions[id]
	sess.StartAt = &startAt
	sess.EndAt = &endAt
	return nil
}

func (r *memSessions) SetMeetingLink(ctx context.Context, id int64, link string) error {
	r.s.sessions[id].MeetingLink = &link
	return nil
}

func (r *memSessions) MarkDone(ctx context.Context, id int64, endAt time.Time) error {
	sess := r.s.sessions[id]
	sess.Status = model.SessionStatusDone
	sess.EndAt = &endAt
	return nil
}

type memLedger struct{ s *memStore }

func (r *memLedger) InsertToken(ctx context.Context, entry *model.TokenEntry) error {
	entry.ID = r.s.id()
	entry.CreatedAt = r.s.now
	r.s.tokens = append(r.s.tokens, entry)
	return nil
}

func (r *memLedger) TokenBalance(ctx context.Context, userID int64) (int, error) {
	balance := 0
	for _, entry := range r.s.tokens {
		if entry.UserID == userID {
			balance += entry.Tokens
		}
	}
	return balance, nil
}

func (r *memLedger) HasMintForSession(ctx context.Context, sessionID int64) (bool, error) {
	for _, entry := range r.s.tokens {
		if entry.SessionID != nil && *entry.SessionID == sessionID && entry.Reason == model.TokenReasonMinted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memLedger) InsertCredit(ctx context.Context, entry *model.CreditEntry) error {
	entry.ID = r.s.id()
	entry.CreatedAt = r.s.now
	r.s.credits = append(r.s.credits, entry)
	return nil
}

func (r *memLedger) CreditMinutes(ctx context.Context, userID int64) (int, error) {
	minutes := 0
	for _, entry := range r.s.credits {
		if entry.UserID == userID {
			minutes += entry.Delta
		}
	}
	return minutes, nil
}

type memChat struct{ s *memStore }

func (r *memChat) UpsertThread(ctx context.Context, userAID, userBID int64) (*model.ChatThread, error) {
	a, b := model.ThreadKey(userAID, userBID)
	for _, thread := range r.s.threads {
		if thread.UserAID == a && thread.UserBID == b {
			return thread, nil
		}
	}
	thread := &model.ChatThread{ID: r.s.id(), UserAID: a, UserBID: b, CreatedAt: r.s.now}
	r.s.threads[thread.ID] = thread
	return thread, nil
}

func (r *memChat) GetThread(ctx context.Context, userAID, userBID int64) (*model.ChatThread, error) {
	a, b := model.ThreadKey(userAID, userBID)
	for _, thread := range r.s.threads {
		if thread.UserAID == a && thread.UserBID == b {
			return thread, nil
		}
	}
	return nil, nil
}

func (r *memChat) InsertMessage(ctx context.Context, msg *model.Message) error {
	msg.ID = r.s.id()
	msg.CreatedAt = r.s.now.Add(time.Duration(msg.ID) * time.Second)
	r.s.messages = append(r.s.messages, msg)
	return nil
}

func (r *memChat) ListMessages(ctx context.Context, threadID int64, after time.Time) ([]*model.Message, error) {
	var messages []*model.Message
	for _, msg := range r.s.messages {
		if msg.ThreadID == threadID && msg.CreatedAt.After(after) {
			messages = append(messages, msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].CreatedAt.Before(messages[j].CreatedAt) })
	return messages, nil
}

type memTranscripts struct{ s *memStore }

func (r *memTranscripts) CreateIngest(ctx context.Context, ingest *model.TranscriptIngest) error {
	ingest.ID = r.s.id()
	ingest.CreatedAt = r.s.now
	r.s.ingests = append(r.s.ingests, ingest)
	return nil
}

type memCourses struct{ s *memStore }

func (r *memCourses) GetByUserAndCode(ctx context.Context, userID int64, courseCode string) (*model.UserCourse, error) {
	return r.s.courses[userID][courseCode], nil
}

func (r *memCourses) Upsert(ctx context.Context, course *model.UserCourse) error {
	if r.s.courses[course.UserID] == nil {
		r.s.courses[course.UserID] = map[string]*model.UserCourse{}
	}
	if existing := r.s.courses[course.UserID][course.CourseCode]; existing != nil {
		existing.Grade = course.Grade
		existing.UpdatedAt = r.s.now
		*course = *existing
		return nil
	}
	course.ID = r.s.id()
	course.CreatedAt = r.s.now
	course.UpdatedAt = r.s.now
	r.s.courses[course.UserID][course.CourseCode] = course
	return nil
}

func (r *memCourses) ListByUser(ctx context.Context, userID int64) ([]*model.UserCourse, error) {
	var courses []*model.UserCourse
	for _, course := range r.s.courses[userID] {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseCode < courses[j].CourseCode })
	return courses, nil
}
