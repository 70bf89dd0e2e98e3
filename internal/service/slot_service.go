package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/repository"
)

type SlotService struct {
	store  repository.Store
	users  *UserService
	logger *zap.Logger
}

func NewSlotService(store repository.Store, users *UserService, logger *zap.Logger) *SlotService {
	return &SlotService{store: store, users: users, logger: logger}
}

// SlotInput carries a slot create/update payload.
type SlotInput struct {
	Type        model.SlotType    `json:"type"`
	CourseCode  string            `json:"course_code"`
	SkillName   string            `json:"skill_name"`
	Day         model.DayOfWeek   `json:"day"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Active      *bool             `json:"active"`
	SessionType model.SessionType `json:"session_type"`
}

func (in *SlotInput) validate() error {
	switch in.Type {
	case model.SlotTypeCourse:
		if in.CourseCode == "" {
			return validationErr("course_code is required for course slots")
		}
		if in.SkillName != "" {
			return validationErr("skill_name must be empty for course slots")
		}
	case model.SlotTypeSkill:
		if in.SkillName == "" {
			return validationErr("skill_name is required for skill slots")
		}
		if in.CourseCode != "" {
			return validationErr("course_code must be empty for skill slots")
		}
	default:
		return validationErr("type must be course or skill")
	}

	if _, ok := in.Day.Weekday(); !ok {
		return validationErr("invalid day of week")
	}
	if _, _, err := parseClock(in.StartTime); err != nil {
		return validationErr("start_time must be HH:MM")
	}
	if _, _, err := parseClock(in.EndTime); err != nil {
		return validationErr("end_time must be HH:MM")
	}
	if in.StartTime >= in.EndTime {
		return validationErr("start_time must be before end_time")
	}

	switch in.SessionType {
	case model.SessionTypeOnline, model.SessionTypeFaceToFace, "":
	default:
		return validationErr("session_type must be ONLINE or FACE_TO_FACE")
	}
	return nil
}

func (in *SlotInput) apply(slot *model.TimeSlot) {
	slot.Type = in.Type
	slot.CourseCode = in.CourseCode
	slot.SkillName = in.SkillName
	slot.Day = in.Day
	slot.StartTime = in.StartTime
	slot.EndTime = in.EndTime
	slot.Active = true
	if in.Active != nil {
		slot.Active = *in.Active
	}
	slot.SessionType = model.SessionTypeOnline
	if in.SessionType != "" {
		slot.SessionType = in.SessionType
	}
}

// Create publishes a new recurring slot for a teacher. The overlap check and
// the insert run in one transaction so two concurrent creates cannot both
// pass the no-conflict read.
func (s *SlotService) Create(ctx context.Context, teacherEmail string, in SlotInput) (*model.TimeSlot, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	teacher, err := s.users.EnsureUser(ctx, teacherEmail)
	if err != nil {
		return nil, err
	}

	slot := &model.TimeSlot{TeacherID: teacher.ID}
	in.apply(slot)

	err = s.store.InTx(ctx, func(st repository.Store) error {
		if slot.Active {
			if err := s.checkOverlap(ctx, st, slot); err != nil {
				return err
			}
		}
		return st.Slots().Create(ctx, slot)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Time slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("teacher_id", teacher.ID),
		zap.String("day", string(slot.Day)),
		zap.String("window", slot.StartTime+"-"+slot.EndTime),
	)
	return slot, nil
}

// Update replaces a slot's fields. The teacher only.
func (s *SlotService) Update(ctx context.Context, slotID int64, teacherEmail string, in SlotInput) (*model.TimeSlot, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	teacher, err := s.users.EnsureUser(ctx, teacherEmail)
	if err != nil {
		return nil, err
	}

	var slot *model.TimeSlot
	err = s.store.InTx(ctx, func(st repository.Store) error {
		slot, err = st.Slots().GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return notFoundErr("time slot")
		}
		if slot.TeacherID != teacher.ID {
			return authorizationErr("only the slot's teacher may modify it")
		}

		in.apply(slot)
		if slot.Active {
			if err := s.checkOverlap(ctx, st, slot); err != nil {
				return err
			}
		}
		return st.Slots().Update(ctx, slot)
	})
	if err != nil {
		return nil, err
	}

	return slot, nil
}

// Delete removes a slot. Refused while a booking pipeline is live on it.
func (s *SlotService) Delete(ctx context.Context, slotID int64, teacherEmail string) error {
	teacher, err := s.users.EnsureUser(ctx, teacherEmail)
	if err != nil {
		return err
	}

	return s.store.InTx(ctx, func(st repository.Store) error {
		slot, err := st.Slots().GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return notFoundErr("time slot")
		}
		if slot.TeacherID != teacher.ID {
			return authorizationErr("only the slot's teacher may delete it")
		}

		live, err := st.Slots().HasLiveBooking(ctx, slotID)
		if err != nil {
			return err
		}
		if live {
			return conflictErr("time slot has an active booking")
		}
		return st.Slots().Delete(ctx, slotID)
	})
}

func (s *SlotService) ListByTeacher(ctx context.Context, teacherEmail string) ([]*model.TimeSlot, error) {
	teacher, err := s.store.Users().GetByEmail(ctx, teacherEmail)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, notFoundErr("user")
	}
	return s.store.Slots().ListByTeacher(ctx, teacher.ID)
}

// ListAvailable returns bookable slots: active, no pending request, no
// non-done session.
func (s *SlotService) ListAvailable(ctx context.Context, slotType model.SlotType, query string) ([]*model.TimeSlot, error) {
	switch slotType {
	case model.SlotTypeCourse, model.SlotTypeSkill, "":
	default:
		return nil, validationErr("type must be course or skill")
	}
	return s.store.Slots().ListAvailable(ctx, slotType, query)
}

// checkOverlap rejects a slot that intersects any other active slot of the
// same teacher on the same day. Half-open windows, touching boundaries pass.
func (s *SlotService) checkOverlap(ctx context.Context, st repository.Store, slot *model.TimeSlot) error {
	others, err := st.Slots().ListActiveByTeacherDay(ctx, slot.TeacherID, slot.Day)
	if err != nil {
		return err
	}
	for _, other := range others {
		if other.ID == slot.ID {
			continue
		}
		if model.Overlaps(slot.StartTime, slot.EndTime, other.StartTime, other.EndTime) {
			return conflictErr("time slot overlaps an existing slot")
		}
	}
	return nil
}
