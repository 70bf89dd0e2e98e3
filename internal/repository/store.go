package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillswap/skillswap_api/internal/model"
)

// Store aggregates the per-entity repositories behind one handle. InTx runs
// fn against a store bound to a single transaction: every read and write
// inside fn commits or rolls back as one unit.
type Store interface {
	InTx(ctx context.Context, fn func(Store) error) error

	Users() UserRepo
	Slots() SlotRepo
	Requests() RequestRepo
	Sessions() SessionRepo
	Ledger() LedgerRepo
	Chat() ChatRepo
	Transcripts() TranscriptRepo
	Courses() CourseRepo
}

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type SlotRepo interface {
	Create(ctx context.Context, slot *model.TimeSlot) error
	GetByID(ctx context.Context, id int64) (*model.TimeSlot, error)
	Update(ctx context.Context, slot *model.TimeSlot) error
	Delete(ctx context.Context, id int64) error
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.TimeSlot, error)
	ListActiveByTeacherDay(ctx context.Context, teacherID int64, day model.DayOfWeek) ([]*model.TimeSlot, error)
	ListAvailable(ctx context.Context, slotType model.SlotType, query string) ([]*model.TimeSlot, error)
	HasLiveBooking(ctx context.Context, slotID int64) (bool, error)
}

type RequestRepo interface {
	Create(ctx context.Context, req *model.Request) error
	GetByID(ctx context.Context, id int64) (*model.Request, error)
	HasActiveBetween(ctx context.Context, fromUserID, toUserID int64) (bool, error)
	MarkAccepted(ctx context.Context, id, sessionID int64) error
	MarkDeclined(ctx context.Context, id int64) error
	ListInbox(ctx context.Context, toUserID int64) ([]*model.Request, error)
	ListSent(ctx context.Context, fromUserID int64) ([]*model.Request, error)
}

type SessionRepo interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	SetSchedule(ctx context.Context, id int64, startAt, endAt time.Time) error
	SetMeetingLink(ctx context.Context, id int64, link string) error
	MarkDone(ctx context.Context, id int64, endAt time.Time) error
}

type LedgerRepo interface {
	InsertToken(ctx context.Context, entry *model.TokenEntry) error
	TokenBalance(ctx context.Context, userID int64) (int, error)
	HasMintForSession(ctx context.Context, sessionID int64) (bool, error)
	InsertCredit(ctx context.Context, entry *model.CreditEntry) error
	CreditMinutes(ctx context.Context, userID int64) (int, error)
}

type ChatRepo interface {
	UpsertThread(ctx context.Context, userAID, userBID int64) (*model.ChatThread, error)
	GetThread(ctx context.Context, userAID, userBID int64) (*model.ChatThread, error)
	InsertMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, threadID int64, after time.Time) ([]*model.Message, error)
}

type TranscriptRepo interface {
	CreateIngest(ctx context.Context, ingest *model.TranscriptIngest) error
}

type CourseRepo interface {
	GetByUserAndCode(ctx context.Context, userID int64, courseCode string) (*model.UserCourse, error)
	Upsert(ctx context.Context, course *model.UserCourse) error
	ListByUser(ctx context.Context, userID int64) ([]*model.UserCourse, error)
}

// PgStore is the Postgres-backed Store.
type PgStore struct {
	pool *pgxpool.Pool
	db   DB
	inTx bool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, db: pool}
}

// InTx begins a transaction and hands fn a store bound to it. Nested calls
// join the outer transaction.
func (s *PgStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&PgStore{pool: s.pool, db: tx, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PgStore) Users() UserRepo             { return &UserRepository{db: s.db} }
func (s *PgStore) Slots() SlotRepo             { return &SlotRepository{db: s.db} }
func (s *PgStore) Requests() RequestRepo       { return &RequestRepository{db: s.db} }
func (s *PgStore) Sessions() SessionRepo       { return &SessionRepository{db: s.db} }
func (s *PgStore) Ledger() LedgerRepo          { return &LedgerRepository{db: s.db} }
func (s *PgStore) Chat() ChatRepo              { return &ChatRepository{db: s.db} }
func (s *PgStore) Transcripts() TranscriptRepo { return &TranscriptRepository{db: s.db} }
func (s *PgStore) Courses() CourseRepo         { return &CourseRepository{db: s.db} }
