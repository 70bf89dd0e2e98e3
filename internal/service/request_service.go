package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/meeting"
	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
)

// meetingLinkTimeout bounds the one external call made inside the accept
// transaction. On expiry the fallback link is written instead.
const meetingLinkTimeout = 5 * time.Second

type RequestService struct {
	store    repository.Store
	users    *UserService
	meetings meeting.Provider
	logger   *zap.Logger
	now      func() time.Time
}

func NewRequestService(store repository.Store, users *UserService, meetings meeting.Provider, logger *zap.Logger) *RequestService {
	return &RequestService{
		store:    store,
		users:    users,
		meetings: meetings,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateInput carries a booking-request payload.
type CreateInput struct {
	FromEmail  string `json:"from_email"`
	ToEmail    string `json:"to_email"`
	CourseCode string `json:"course_code"`
	Minutes    int    `json:"minutes"`
	Note       string `json:"note"`
	TimeSlotID *int64 `json:"time_slot_id"`
}

// Create inserts a PENDING booking request. Preconditions are checked in
// order; each failure is distinct and happens before any write besides the
// ensure-user rows.
func (s *RequestService) Create(ctx context.Context, in CreateInput) (*model.Request, error) {
	if strings.EqualFold(strings.TrimSpace(in.FromEmail), strings.TrimSpace(in.ToEmail)) {
		return nil, validationErr("cannot request yourself")
	}
	if in.Minutes < 15 {
		return nil, validationErr("minutes must be at least 15")
	}
	if in.CourseCode == "" {
		return nil, validationErr("course_code is required")
	}

	fromUser, err := s.users.EnsureUser(ctx, in.FromEmail)
	if err != nil {
		return nil, err
	}
	toUser, err := s.users.EnsureUser(ctx, in.ToEmail)
	if err != nil {
		return nil, err
	}

	req := &model.Request{
		FromUserID: fromUser.ID,
		ToUserID:   toUser.ID,
		CourseCode: in.CourseCode,
		Minutes:    in.Minutes,
		Note:       in.Note,
		TimeSlotID: in.TimeSlotID,
		Status:     model.RequestStatusPending,
	}

	err = s.store.InTx(ctx, func(st repository.Store) error {
		if in.TimeSlotID != nil {
			slot, err := st.Slots().GetByID(ctx, *in.TimeSlotID)
			if err != nil {
				return err
			}
			if slot == nil {
				return notFoundErr("time slot")
			}
			if !slot.Active {
				return validationErr("time slot is not active")
			}
			if slot.TeacherID != toUser.ID {
				return validationErr("time slot does not belong to the requested teacher")
			}
		}

		// Balance is checked again at acceptance; tokens can be spent
		// elsewhere in between.
		balance, err := st.Ledger().TokenBalance(ctx, fromUser.ID)
		if err != nil {
			return err
		}
		if balance < 1 {
			return validationErr("insufficient tokens to send a request")
		}

		active, err := st.Requests().HasActiveBetween(ctx, fromUser.ID, toUser.ID)
		if err != nil {
			return err
		}
		if active {
			return conflictErr("already have an active booking request")
		}

		return st.Requests().Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking request created",
		zap.Int64("request_id", req.ID),
		zap.Int64("from_user_id", fromUser.ID),
		zap.Int64("to_user_id", toUser.ID),
		zap.String("course_code", req.CourseCode),
	)
	return req, nil
}

// Accept runs the full acceptance workflow in one transaction: session
// creation, token debit, credit rows and the chat thread commit together or
// not at all. Re-invocation on a non-pending request is a no-op returning
// the request unchanged.
func (s *RequestService) Accept(ctx context.Context, requestID int64, actingEmail string) (*model.Request, error) {
	actor, err := s.users.EnsureUser(ctx, actingEmail)
	if err != nil {
		return nil, err
	}

	var req *model.Request
	err = s.store.InTx(ctx, func(st repository.Store) error {
		req, err = st.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return notFoundErr("request")
		}
		if req.ToUserID != actor.ID {
			return authorizationErr("not authorized to accept this request")
		}
		if !req.IsPending() {
			// Accept is safe to retry: no error, no side effects.
			return nil
		}

		// Re-validated here because balances can change between request
		// creation and acceptance.
		balance, err := st.Ledger().TokenBalance(ctx, req.FromUserID)
		if err != nil {
			return err
		}
		if balance < 1 {
			return validationErr("insufficient tokens")
		}

		session := &model.Session{
			TeacherID:   req.ToUserID,
			LearnerID:   req.FromUserID,
			CourseCode:  req.CourseCode,
			Minutes:     req.Minutes,
			TimeSlotID:  req.TimeSlotID,
			SessionType: model.SessionTypeOnline,
		}

		if req.TimeSlotID != nil {
			slot, err := st.Slots().GetByID(ctx, *req.TimeSlotID)
			if err != nil {
				return err
			}
			if slot == nil {
				return notFoundErr("time slot")
			}
			startAt, endAt, err := NextOccurrence(s.now(), slot)
			if err != nil {
				return validationErr(err.Error())
			}
			session.StartAt = &startAt
			session.EndAt = &endAt
			session.SessionType = slot.SessionType
		}

		if err := st.Sessions().Create(ctx, session); err != nil {
			return err
		}

		if session.SessionType == model.SessionTypeOnline {
			link := s.createMeetingLink(ctx, session, actingEmail, req)
			if err := st.Sessions().SetMeetingLink(ctx, session.ID, link); err != nil {
				return err
			}
			session.MeetingLink = &link
		}

		if err := st.Requests().MarkAccepted(ctx, req.ID, session.ID); err != nil {
			return err
		}
		req.Status = model.RequestStatusAccepted
		req.SessionID = &session.ID
		req.Session = session

		if err := st.Ledger().InsertToken(ctx, &model.TokenEntry{
			UserID:    req.FromUserID,
			SessionID: &session.ID,
			Tokens:    -1,
			Reason:    model.TokenReasonSpent,
		}); err != nil {
			return err
		}

		if err := st.Ledger().InsertCredit(ctx, &model.CreditEntry{
			UserID:    req.ToUserID,
			SessionID: session.ID,
			Delta:     req.Minutes,
			Reason:    model.CreditReasonTaught,
		}); err != nil {
			return err
		}
		if err := st.Ledger().InsertCredit(ctx, &model.CreditEntry{
			UserID:    req.FromUserID,
			SessionID: session.ID,
			Delta:     -req.Minutes,
			Reason:    model.CreditReasonTaken,
		}); err != nil {
			return err
		}

		// The two parties can message each other immediately.
		if _, err := st.Chat().UpsertThread(ctx, req.FromUserID, req.ToUserID); err != nil {
			return err
		}

		s.logger.Info("Booking request accepted",
			zap.Int64("request_id", req.ID),
			zap.Int64("session_id", session.ID),
			zap.Int64("teacher_id", req.ToUserID),
			zap.Int64("learner_id", req.FromUserID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return req, nil
}

// createMeetingLink asks the provider for a join link with a bounded timeout.
// Provider failures never abort the accept transaction; the fallback
// placeholder is substituted instead.
func (s *RequestService) createMeetingLink(ctx context.Context, session *model.Session, teacherEmail string, req *model.Request) string {
	learner, err := s.store.Users().GetByID(ctx, req.FromUserID)
	learnerEmail := ""
	if err == nil && learner != nil {
		learnerEmail = learner.Email
	}

	linkCtx, cancel := context.WithTimeout(ctx, meetingLinkTimeout)
	defer cancel()

	link, err := s.meetings.CreateLink(linkCtx, meeting.LinkRequest{
		SessionID:    session.ID,
		TeacherEmail: teacherEmail,
		LearnerEmail: learnerEmail,
		CourseCode:   session.CourseCode,
		StartAt:      session.StartAt,
		Minutes:      session.Minutes,
	})
	if err != nil {
		s.logger.Warn("Meeting provider failed, using fallback link",
			zap.Int64("session_id", session.ID),
			zap.Error(err),
		)
		return meeting.FallbackLink()
	}
	return link
}

// Decline rejects a pending request. Only PENDING requests can be declined:
// declining a DECLINED request is an idempotent no-op, declining an ACCEPTED
// one is a conflict (the session already exists).
func (s *RequestService) Decline(ctx context.Context, requestID int64, actingEmail string) (*model.Request, error) {
	actor, err := s.users.EnsureUser(ctx, actingEmail)
	if err != nil {
		return nil, err
	}

	var req *model.Request
	err = s.store.InTx(ctx, func(st repository.Store) error {
		req, err = st.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return notFoundErr("request")
		}
		if req.ToUserID != actor.ID {
			return authorizationErr("not authorized to decline this request")
		}
		switch req.Status {
		case model.RequestStatusDeclined:
			return nil
		case model.RequestStatusAccepted:
			return conflictErr("request already accepted")
		}

		if err := st.Requests().MarkDeclined(ctx, req.ID); err != nil {
			return err
		}
		req.Status = model.RequestStatusDeclined

		s.logger.Info("Booking request declined",
			zap.Int64("request_id", req.ID),
			zap.Int64("teacher_id", actor.ID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return req, nil
}

func (s *RequestService) Get(ctx context.Context, requestID int64) (*model.Request, error) {
	req, err := s.store.Requests().GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, notFoundErr("request")
	}
	return req, nil
}

// Inbox lists requests addressed to the user whose session is not done.
func (s *RequestService) Inbox(ctx context.Context, email string) ([]*model.Request, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("user")
	}
	return s.store.Requests().ListInbox(ctx, user.ID)
}

// Sent lists requests the user created whose session is not done.
func (s *RequestService) Sent(ctx context.Context, email string) ([]*model.Request, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("user")
	}
	return s.store.Requests().ListSent(ctx, user.ID)
}
