package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
	"github.com/skillswap/skillswap_api/internal/transcript"
)

type TranscriptService struct {
	store  repository.Store
	users  *UserService
	policy transcript.Policy
	logger *zap.Logger
}

func NewTranscriptService(store repository.Store, users *UserService, policy transcript.Policy, logger *zap.Logger) *TranscriptService {
	return &TranscriptService{store: store, users: users, policy: policy, logger: logger}
}

// IngestSummary is what the upload endpoint returns alongside the two lists.
type IngestSummary struct {
	TotalCourses        int            `json:"totalCourses"`
	Eligible            int            `json:"eligible"`
	NonEligible         int            `json:"nonEligible"`
	ConfidenceBreakdown map[string]int `json:"confidenceBreakdown"`
}

// Ingest runs the extraction pipeline over the PDF's raw text and writes the
// audit row. No courses are added here; that is the explicit follow-up after
// the caller reviews the result. The content hash is advisory (future dedup).
func (s *TranscriptService) Ingest(ctx context.Context, email, filename string, fileData []byte, rawText string) (*transcript.Result, *IngestSummary, error) {
	user, err := s.users.EnsureUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	result, err := transcript.Extract(rawText, s.policy)
	if err != nil {
		if errors.Is(err, transcript.ErrUnreadableText) {
			return nil, nil, validationErr("could not read transcript text, please upload a text-based PDF")
		}
		return nil, nil, err
	}

	blob, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal extraction result: %w", err)
	}

	hash := sha256.Sum256(fileData)
	ingest := &model.TranscriptIngest{
		UserID:      user.ID,
		Filename:    filename,
		ContentHash: hex.EncodeToString(hash[:]),
		Result:      blob,
		AddedCount:  0,
	}
	if err := s.store.Transcripts().CreateIngest(ctx, ingest); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Transcript ingested",
		zap.Int64("user_id", user.ID),
		zap.String("filename", filename),
		zap.Int("eligible", len(result.Eligible)),
		zap.Int("non_eligible", len(result.NonEligible)),
	)

	summary := &IngestSummary{
		TotalCourses:        len(result.Eligible) + len(result.NonEligible),
		Eligible:            len(result.Eligible),
		NonEligible:         len(result.NonEligible),
		ConfidenceBreakdown: result.ConfidenceBreakdown(),
	}
	return result, summary, nil
}

// SelectedCourse is one reviewed row from an extraction result.
type SelectedCourse struct {
	Code  string `json:"code"`
	Grade string `json:"grade"`
}

// AddSelectedCourses upserts the user's confirmed courses. An existing grade
// is only overwritten when the new one outranks it.
func (s *TranscriptService) AddSelectedCourses(ctx context.Context, email string, courses []SelectedCourse) ([]*model.UserCourse, error) {
	if len(courses) == 0 {
		return nil, validationErr("courses are required")
	}
	for _, c := range courses {
		if c.Code == "" || c.Grade == "" {
			return nil, validationErr("each course needs a code and a grade")
		}
	}

	user, err := s.users.EnsureUser(ctx, email)
	if err != nil {
		return nil, err
	}

	var added []*model.UserCourse
	err = s.store.InTx(ctx, func(st repository.Store) error {
		for _, c := range courses {
			existing, err := st.Courses().GetByUserAndCode(ctx, user.ID, c.Code)
			if err != nil {
				return err
			}
			if existing != nil && transcript.GradeRank(c.Grade) <= transcript.GradeRank(existing.Grade) {
				added = append(added, existing)
				continue
			}

			course := &model.UserCourse{
				UserID:     user.ID,
				CourseCode: c.Code,
				Grade:      c.Grade,
			}
			if err := st.Courses().Upsert(ctx, course); err != nil {
				return err
			}
			added = append(added, course)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// ListCourses returns the user's confirmed courses.
func (s *TranscriptService) ListCourses(ctx context.Context, email string) ([]*model.UserCourse, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundErr("user")
	}
	return s.store.Courses().ListByUser(ctx, user.ID)
}
