package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ediary-dev/ediary-api/internal/models"
	appErrors "github.com/ediary-dev/ediary-api/pkg/errors"
	"github.com/ediary-dev/ediary-api/pkg/export"
)

// unknownSubgroupLabel replaces the name of a subgroup deleted after entries
// referencing it were created.
const unknownSubgroupLabel = "Unknown subgroup"

type scheduleEntryReader interface {
	ListByClassAndRange(ctx context.Context, classID string, dateRange models.DateRange) ([]models.ScheduleEntry, error)
}

type subgroupReader interface {
	membershipReader
	ListByClass(ctx context.Context, classID string) ([]models.Subgroup, error)
}

type effectiveSlotLister interface {
	ListEffective(ctx context.Context, classID string) (*models.EffectiveSlotList, error)
}

// ScheduleService is the read pipeline behind every schedule view: it fetches
// raw entries, resolves their effective times, narrows them to what the
// viewer may see and returns them display-ready.
type ScheduleService struct {
	entries   scheduleEntryReader
	slots     effectiveSlotLister
	subgroups subgroupReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService instantiates ScheduleService.
func NewScheduleService(entries scheduleEntryReader, slots effectiveSlotLister, subgroups subgroupReader, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{entries: entries, slots: slots, subgroups: subgroups, validator: validate, logger: logger}
}

// GetSchedule returns the effective, viewer-filtered schedule for a class and
// date range, sorted by (date, slot number). Entries whose slot number has no
// default are kept and flagged unresolved; a lesson must never silently
// disappear because of a slot-configuration gap. Any collaborator failure
// surfaces as a single aggregate error, never as partial results.
func (s *ScheduleService) GetSchedule(ctx context.Context, classID string, dateRange models.DateRange, viewer models.Viewer) ([]models.DisplayEntry, error) {
	if classID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class id is required")
	}
	if dateRange.From.IsZero() || dateRange.To.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date range is required")
	}
	if dateRange.To.Before(dateRange.From) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date range end precedes start")
	}

	// The four reads are independent; combination waits for all of them.
	var (
		entries   []models.ScheduleEntry
		slotList  *models.EffectiveSlotList
		subgroups []models.Subgroup
		scope     ViewerScope
	)

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if entries, err = s.entries.ListByClassAndRange(ctx, classID, dateRange); err != nil {
			errs <- fmt.Errorf("entries: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if slotList, err = s.slots.ListEffective(ctx, classID); err != nil {
			errs <- fmt.Errorf("slots: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if subgroups, err = s.subgroups.ListByClass(ctx, classID); err != nil {
			errs <- fmt.Errorf("subgroups: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if scope, err = resolveViewerScope(ctx, viewer, s.subgroups); err != nil {
			errs <- fmt.Errorf("viewer scope: %w", err)
		}
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		s.logger.Error("schedule read pipeline failed", zap.String("class_id", classID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrScheduleUnavailable.Code, appErrors.ErrScheduleUnavailable.Status, appErrors.ErrScheduleUnavailable.Message)
	}

	slotByNumber := make(map[int]models.EffectiveSlot, len(slotList.Slots))
	for _, slot := range slotList.Slots {
		slotByNumber[slot.SlotNumber] = slot
	}
	subgroupNames := make(map[string]string, len(subgroups))
	for _, subgroup := range subgroups {
		subgroupNames[subgroup.ID] = subgroup.Name
	}

	visible := FilterVisible(entries, scope)

	display := make([]models.DisplayEntry, 0, len(visible))
	for _, entry := range visible {
		item := models.DisplayEntry{
			ScheduleEntry: entry,
			DayOfWeek:     ISOWeekday(entry.ScheduleDate),
		}
		if slot, ok := slotByNumber[entry.SlotNumber]; ok {
			item.StartTime = slot.StartTime
			item.EndTime = slot.EndTime
			item.SlotSource = slot.Source
		} else {
			item.TimeUnresolved = true
		}
		if entry.SubgroupID != nil {
			name := unknownSubgroupLabel
			if known, ok := subgroupNames[*entry.SubgroupID]; ok {
				name = known
			}
			item.SubgroupName = &name
		}
		display = append(display, item)
	}

	sort.SliceStable(display, func(i, j int) bool {
		if !display[i].ScheduleDate.Equal(display[j].ScheduleDate) {
			return display[i].ScheduleDate.Before(display[j].ScheduleDate)
		}
		return display[i].SlotNumber < display[j].SlotNumber
	})

	return display, nil
}

// BuildTimetable renders the resolved schedule into an exportable timetable.
func (s *ScheduleService) BuildTimetable(ctx context.Context, classID string, dateRange models.DateRange, viewer models.Viewer) (export.Timetable, error) {
	entries, err := s.GetSchedule(ctx, classID, dateRange, viewer)
	if err != nil {
		return export.Timetable{}, err
	}

	timetable := export.Timetable{
		Title: fmt.Sprintf("Class %s timetable %s - %s", classID, dateRange.From.Format("2006-01-02"), dateRange.To.Format("2006-01-02")),
		Rows:  make([]export.TimetableRow, 0, len(entries)),
	}
	for _, entry := range entries {
		row := export.TimetableRow{
			Date:    entry.ScheduleDate.Format("2006-01-02"),
			Weekday: ISOWeekdayName(entry.DayOfWeek),
			Slot:    fmt.Sprintf("%d", entry.SlotNumber),
			Subject: entry.SubjectID,
			Teacher: entry.TeacherID,
			Room:    entry.Room,
		}
		if entry.TimeUnresolved {
			row.Time = "unscheduled"
		} else {
			row.Time = fmt.Sprintf("%s-%s", entry.StartTime, entry.EndTime)
		}
		if entry.SubgroupName != nil {
			row.Subgroup = *entry.SubgroupName
		}
		timetable.Rows = append(timetable.Rows, row)
	}
	return timetable, nil
}

// ParseDateRange parses inclusive from/to query values in YYYY-MM-DD form.
func ParseDateRange(from, to string) (models.DateRange, error) {
	var dateRange models.DateRange
	start, err := parseDate(from)
	if err != nil {
		return dateRange, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid from date %q, expected YYYY-MM-DD", from))
	}
	end, err := parseDate(to)
	if err != nil {
		return dateRange, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid to date %q, expected YYYY-MM-DD", to))
	}
	dateRange.From = start
	dateRange.To = end
	if dateRange.To.Before(dateRange.From) {
		return dateRange, appErrors.Clone(appErrors.ErrValidation, "date range end precedes start")
	}
	return dateRange, nil
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(raw))
}
