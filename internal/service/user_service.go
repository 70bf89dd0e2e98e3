package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
)

type UserService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewUserService(store repository.Store, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// EnsureUser resolves a user by email, creating the row plus the bootstrap
// token grant on first reference. Concurrent first references race on the
// unique email index: insert loses gracefully and falls back to a read, so
// the grant is written exactly once.
func (s *UserService) EnsureUser(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, validationErr("email is required")
	}

	var user *model.User
	err := s.store.InTx(ctx, func(st repository.Store) error {
		existing, err := st.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			user = existing
			return nil
		}

		created := &model.User{Email: email}
		if err := st.Users().Create(ctx, created); err != nil {
			if repository.IsUniqueViolation(err) {
				// Another transaction created this user first.
				user, err = st.Users().GetByEmail(ctx, email)
				return err
			}
			return err
		}

		if err := st.Ledger().InsertToken(ctx, &model.TokenEntry{
			UserID: created.ID,
			Tokens: 1,
			Reason: model.TokenReasonInitialGrant,
		}); err != nil {
			return err
		}

		s.logger.Info("User created",
			zap.Int64("user_id", created.ID),
			zap.String("email", created.Email),
		)
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Balance summarises a user's ledgers.
type Balance struct {
	Tokens        int `json:"tokens"`
	CreditMinutes int `json:"credit_minutes"`
}

func (s *UserService) Balance(ctx context.Context, email string) (*Balance, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("user")
	}

	tokens, err := s.store.Ledger().TokenBalance(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	minutes, err := s.store.Ledger().CreditMinutes(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Balance{Tokens: tokens, CreditMinutes: minutes}, nil
}
