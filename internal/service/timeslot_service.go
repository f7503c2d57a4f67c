package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ediary-dev/ediary-api/internal/models"
	appErrors "github.com/ediary-dev/ediary-api/pkg/errors"
)

type defaultSlotRepository interface {
	List(ctx context.Context) ([]models.TimeSlotDefault, error)
	FindBySlotNumber(ctx context.Context, slotNumber int) (*models.TimeSlotDefault, error)
}

type slotOverrideRepository interface {
	ListByClass(ctx context.Context, classID string) ([]models.ClassTimeSlotOverride, error)
	Find(ctx context.Context, classID string, slotNumber int) (*models.ClassTimeSlotOverride, error)
	Upsert(ctx context.Context, override *models.ClassTimeSlotOverride) error
	Delete(ctx context.Context, classID string, slotNumber int) error
	DeleteAllByClass(ctx context.Context, classID string) error
}

// UpsertOverrideRequest describes the payload for creating or replacing a
// class time override.
type UpsertOverrideRequest struct {
	ClassID    string `json:"-" validate:"required"`
	SlotNumber int    `json:"-" validate:"required,min=1"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}

// TimeSlotService resolves effective lesson times from the two-level
// default/override hierarchy. The merge rule lives here and nowhere else.
type TimeSlotService struct {
	defaults  defaultSlotRepository
	overrides slotOverrideRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimeSlotService instantiates TimeSlotService.
func NewTimeSlotService(defaults defaultSlotRepository, overrides slotOverrideRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TimeSlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimeSlotService{defaults: defaults, overrides: overrides, cache: cache, validator: validate, logger: logger}
}

// ListDefaults returns the school-wide slot grid.
func (s *TimeSlotService) ListDefaults(ctx context.Context) ([]models.TimeSlotDefault, error) {
	defaults, err := s.defaults.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list default slots")
	}
	return defaults, nil
}

// Resolve returns the effective time for a (class, slot number) pair. An
// override wins over the default; an override without a default never makes
// the slot resolvable.
func (s *TimeSlotService) Resolve(ctx context.Context, classID string, slotNumber int) (*models.EffectiveSlot, error) {
	def, err := s.defaults.FindBySlotNumber(ctx, slotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no default time is defined for this slot number")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load default slot")
	}

	override, err := s.overrides.Find(ctx, classID, slotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.EffectiveSlot{
				SlotNumber: def.SlotNumber,
				StartTime:  def.StartTime,
				EndTime:    def.EndTime,
				Source:     models.SlotSourceDefault,
			}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot override")
	}

	return &models.EffectiveSlot{
		SlotNumber: override.SlotNumber,
		StartTime:  override.StartTime,
		EndTime:    override.EndTime,
		Source:     models.SlotSourceOverride,
	}, nil
}

// ListEffective merges defaults and class overrides into the full slot grid,
// ordered by ascending slot number. Overrides referencing a slot number with
// no default are reported as orphans, never silently hidden.
func (s *TimeSlotService) ListEffective(ctx context.Context, classID string) (*models.EffectiveSlotList, error) {
	cacheKey := slotCacheKey(classID)
	if s.cache.Enabled() {
		var cached models.EffectiveSlotList
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.logger.Warn("slot cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	defaults, err := s.defaults.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list default slots")
	}
	overrides, err := s.overrides.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slot overrides")
	}

	overrideBySlot := make(map[int]models.ClassTimeSlotOverride, len(overrides))
	for _, override := range overrides {
		overrideBySlot[override.SlotNumber] = override
	}

	result := &models.EffectiveSlotList{Slots: make([]models.EffectiveSlot, 0, len(defaults))}
	known := make(map[int]struct{}, len(defaults))
	for _, def := range defaults {
		known[def.SlotNumber] = struct{}{}
		if override, ok := overrideBySlot[def.SlotNumber]; ok {
			result.Slots = append(result.Slots, models.EffectiveSlot{
				SlotNumber: def.SlotNumber,
				StartTime:  override.StartTime,
				EndTime:    override.EndTime,
				Source:     models.SlotSourceOverride,
			})
			continue
		}
		result.Slots = append(result.Slots, models.EffectiveSlot{
			SlotNumber: def.SlotNumber,
			StartTime:  def.StartTime,
			EndTime:    def.EndTime,
			Source:     models.SlotSourceDefault,
		})
	}

	for _, override := range overrides {
		if _, ok := known[override.SlotNumber]; !ok {
			result.OrphanOverrides = append(result.OrphanOverrides, override)
		}
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.logger.Warn("slot cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

// UpsertOverride validates and stores a class time override. Invalid input is
// rejected before any write reaches the store.
func (s *TimeSlotService) UpsertOverride(ctx context.Context, req UpsertOverrideRequest) (*models.ClassTimeSlotOverride, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid override payload")
	}

	start, err := parseWallClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start time %q, expected HH:MM", req.StartTime))
	}
	end, err := parseWallClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end time %q, expected HH:MM", req.EndTime))
	}
	if !start.Before(end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must be before end time")
	}

	if _, err := s.defaults.FindBySlotNumber(ctx, req.SlotNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnknownSlot, fmt.Sprintf("slot %d has no school-wide default", req.SlotNumber))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load default slot")
	}

	override := &models.ClassTimeSlotOverride{
		ClassID:    req.ClassID,
		SlotNumber: req.SlotNumber,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if err := s.overrides.Upsert(ctx, override); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upsert slot override")
	}

	s.invalidateClassSlots(ctx, req.ClassID)
	return override, nil
}

// DeleteOverride removes the override for a (class, slot number) pair. The
// operation is idempotent; deleting an absent override succeeds.
func (s *TimeSlotService) DeleteOverride(ctx context.Context, classID string, slotNumber int) error {
	if err := s.overrides.Delete(ctx, classID, slotNumber); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete slot override")
	}
	s.invalidateClassSlots(ctx, classID)
	return nil
}

// ResetOverrides removes every override of the class in one atomic step.
func (s *TimeSlotService) ResetOverrides(ctx context.Context, classID string) error {
	if err := s.overrides.DeleteAllByClass(ctx, classID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset slot overrides")
	}
	s.invalidateClassSlots(ctx, classID)
	return nil
}

// invalidateClassSlots is the named post-write effect of every override
// mutation: it drops the cached effective grid for the class before the
// mutation returns, so subsequent reads reflect the current override state.
func (s *TimeSlotService) invalidateClassSlots(ctx context.Context, classID string) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Delete(ctx, slotCacheKey(classID)); err != nil {
		s.logger.Warn("slot cache invalidation failed", zap.String("class_id", classID), zap.Error(err))
	}
}

func slotCacheKey(classID string) string {
	return fmt.Sprintf("slots:class:%s", classID)
}

func parseWallClock(raw string) (time.Time, error) {
	return time.Parse("15:04", raw)
}
