package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
)

type SessionService struct {
	store  repository.Store
	users  *UserService
	logger *zap.Logger
	now    func() time.Time
}

func NewSessionService(store repository.Store, users *UserService, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:  store,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// Schedule sets the session's concrete start, end = start + minutes. Either
// participant may schedule; rescheduling simply overwrites, no history kept.
func (s *SessionService) Schedule(ctx context.Context, sessionID int64, actingEmail string, startAt time.Time) (*model.Session, error) {
	actor, err := s.users.EnsureUser(ctx, actingEmail)
	if err != nil {
		return nil, err
	}

	var session *model.Session
	err = s.store.InTx(ctx, func(st repository.Store) error {
		session, err = st.Sessions().GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return notFoundErr("session")
		}
		if actor.ID != session.TeacherID && actor.ID != session.LearnerID {
			return authorizationErr("not authorized to schedule this session")
		}
		if session.Done() {
			return conflictErr("session already completed")
		}

		endAt := startAt.Add(time.Duration(session.Minutes) * time.Minute)
		if err := st.Sessions().SetSchedule(ctx, session.ID, startAt, endAt); err != nil {
			return err
		}
		session.StartAt = &startAt
		session.EndAt = &endAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Session scheduled",
		zap.Int64("session_id", session.ID),
		zap.Time("start_at", startAt),
	)
	return session, nil
}

// Complete marks the session done and mints floor(minutes/60) tokens to the
// teacher. A completed session is a full no-op on repeat calls: end_at is
// not refreshed and the mint guard keeps the token from duplicating either
// way. Atomic.
func (s *SessionService) Complete(ctx context.Context, sessionID int64, actingEmail string) (*model.Session, error) {
	actor, err := s.users.EnsureUser(ctx, actingEmail)
	if err != nil {
		return nil, err
	}

	var session *model.Session
	err = s.store.InTx(ctx, func(st repository.Store) error {
		session, err = st.Sessions().GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return notFoundErr("session")
		}
		if actor.ID != session.TeacherID && actor.ID != session.LearnerID {
			return authorizationErr("not authorized to complete this session")
		}
		if session.Done() {
			return nil
		}

		endAt := s.now()
		if err := st.Sessions().MarkDone(ctx, session.ID, endAt); err != nil {
			return err
		}
		session.Status = model.SessionStatusDone
		session.EndAt = &endAt

		tokens := session.Minutes / 60
		if tokens > 0 {
			minted, err := st.Ledger().HasMintForSession(ctx, session.ID)
			if err != nil {
				return err
			}
			if !minted {
				if err := st.Ledger().InsertToken(ctx, &model.TokenEntry{
					UserID:    session.TeacherID,
					SessionID: &session.ID,
					Tokens:    tokens,
					Reason:    model.TokenReasonMinted,
				}); err != nil {
					return err
				}
			}
		}

		s.logger.Info("Session completed",
			zap.Int64("session_id", session.ID),
			zap.Int64("teacher_id", session.TeacherID),
			zap.Int("tokens_minted", tokens),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID int64) (*model.Session, error) {
	session, err := s.store.Sessions().GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFoundErr("session")
	}
	return session, nil
}
