package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
)

type ChatService struct {
	store  repository.Store
	users  *UserService
	logger *zap.Logger
}

func NewChatService(store repository.Store, users *UserService, logger *zap.Logger) *ChatService {
	return &ChatService{store: store, users: users, logger: logger}
}

// SendMessage appends a message to the pair's thread, creating the thread
// idempotently if two users have never talked before.
func (s *ChatService) SendMessage(ctx context.Context, fromEmail, toEmail, text string) (*model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErr("message text is required")
	}
	if strings.EqualFold(strings.TrimSpace(fromEmail), strings.TrimSpace(toEmail)) {
		return nil, validationErr("cannot message yourself")
	}

	from, err := s.users.EnsureUser(ctx, fromEmail)
	if err != nil {
		return nil, err
	}
	to, err := s.users.EnsureUser(ctx, toEmail)
	if err != nil {
		return nil, err
	}

	var msg *model.Message
	err = s.store.InTx(ctx, func(st repository.Store) error {
		thread, err := st.Chat().UpsertThread(ctx, from.ID, to.ID)
		if err != nil {
			return err
		}
		msg = &model.Message{
			ThreadID: thread.ID,
			SenderID: from.ID,
			Text:     text,
		}
		return st.Chat().InsertMessage(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// History returns the pair's messages in ascending order, optionally only
// those after the cursor. An empty history is returned when the two users
// have no thread yet.
func (s *ChatService) History(ctx context.Context, emailA, emailB string, after time.Time) ([]*model.Message, error) {
	a, err := s.store.Users().GetByEmail(ctx, emailA)
	if err != nil {
		return nil, err
	}
	b, err := s.store.Users().GetByEmail(ctx, emailB)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, notFoundErr("user")
	}

	thread, err := s.store.Chat().GetThread(ctx, a.ID, b.ID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return []*model.Message{}, nil
	}

	return s.store.Chat().ListMessages(ctx, thread.ID, after)
}
