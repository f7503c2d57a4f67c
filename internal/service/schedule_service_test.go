package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ediary-dev/ediary-api/internal/models"
	appErrors "github.com/ediary-dev/ediary-api/pkg/errors"
)

type entryReaderStub struct {
	entries []models.ScheduleEntry
	err     error
}

func (s entryReaderStub) ListByClassAndRange(ctx context.Context, classID string, dateRange models.DateRange) ([]models.ScheduleEntry, error) {
	return s.entries, s.err
}

type slotListerStub struct {
	list *models.EffectiveSlotList
	err  error
}

func (s slotListerStub) ListEffective(ctx context.Context, classID string) (*models.EffectiveSlotList, error) {
	return s.list, s.err
}

type subgroupReaderStub struct {
	membershipReaderStub
	subgroups []models.Subgroup
	err       error
}

func (s subgroupReaderStub) ListByClass(ctx context.Context, classID string) ([]models.Subgroup, error) {
	return s.subgroups, s.err
}

func adminViewer() models.Viewer {
	return models.Viewer{Role: models.RoleAdmin, UserID: "admin-1"}
}

func standardSlotList() *models.EffectiveSlotList {
	return &models.EffectiveSlotList{Slots: []models.EffectiveSlot{
		{SlotNumber: 1, StartTime: "08:00", EndTime: "08:45", Source: models.SlotSourceDefault},
		{SlotNumber: 2, StartTime: "08:55", EndTime: "09:40", Source: models.SlotSourceOverride},
	}}
}

func weekRange(t *testing.T) models.DateRange {
	t.Helper()
	dateRange, err := ParseDateRange("2024-09-02", "2024-09-08")
	require.NoError(t, err)
	return dateRange
}

func TestGetScheduleResolvesTimesAndFlagsGaps(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "e1", ClassID: "class-7", TeacherID: "t1", ScheduleDate: monday, SlotNumber: 1},
		{ID: "e2", ClassID: "class-7", TeacherID: "t1", ScheduleDate: monday, SlotNumber: 7},
	}}
	svc := NewScheduleService(entries, slotListerStub{list: standardSlotList()}, subgroupReaderStub{}, nil, nil)

	got, err := svc.GetSchedule(context.Background(), "class-7", weekRange(t), adminViewer())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.False(t, got[0].TimeUnresolved)
	assert.Equal(t, "08:00", got[0].StartTime)
	assert.Equal(t, models.SlotSourceDefault, got[0].SlotSource)
	assert.Equal(t, 1, got[0].DayOfWeek)

	// Slot 7 has no definition: the lesson stays listed, flagged, timeless.
	assert.True(t, got[1].TimeUnresolved)
	assert.Empty(t, got[1].StartTime)
	assert.Empty(t, got[1].EndTime)
}

func TestGetScheduleSortsByDateThenSlot(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "tue-1", ScheduleDate: tuesday, SlotNumber: 1},
		{ID: "mon-2", ScheduleDate: monday, SlotNumber: 2},
		{ID: "mon-1", ScheduleDate: monday, SlotNumber: 1},
	}}
	svc := NewScheduleService(entries, slotListerStub{list: standardSlotList()}, subgroupReaderStub{}, nil, nil)

	got, err := svc.GetSchedule(context.Background(), "class-7", weekRange(t), adminViewer())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "mon-1", got[0].ID)
	assert.Equal(t, "mon-2", got[1].ID)
	assert.Equal(t, "tue-1", got[2].ID)
	assert.Equal(t, 2, got[2].DayOfWeek)
}

func TestGetScheduleSubgroupNames(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "e1", ScheduleDate: monday, SlotNumber: 1, SubgroupID: strPtr("sub-a")},
		{ID: "e2", ScheduleDate: monday, SlotNumber: 2, SubgroupID: strPtr("sub-gone")},
		{ID: "e3", ScheduleDate: monday, SlotNumber: 2},
	}}
	subgroups := subgroupReaderStub{subgroups: []models.Subgroup{
		{ID: "sub-a", ClassID: "class-7", Name: "English A"},
	}}
	svc := NewScheduleService(entries, slotListerStub{list: standardSlotList()}, subgroups, nil, nil)

	got, err := svc.GetSchedule(context.Background(), "class-7", weekRange(t), adminViewer())
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].SubgroupName)
	assert.Equal(t, "English A", *got[0].SubgroupName)

	// Dangling subgroup reference renders a placeholder, not an error.
	require.NotNil(t, got[1].SubgroupName)
	assert.Equal(t, "Unknown subgroup", *got[1].SubgroupName)

	assert.Nil(t, got[2].SubgroupName)
}

func TestGetScheduleViewerFiltering(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "whole", ScheduleDate: monday, SlotNumber: 1},
		{ID: "mine", ScheduleDate: monday, SlotNumber: 2, SubgroupID: strPtr("sub-a")},
		{ID: "other", ScheduleDate: monday, SlotNumber: 2, SubgroupID: strPtr("sub-b")},
	}}
	subgroups := subgroupReaderStub{
		membershipReaderStub: membershipReaderStub{
			membershipsByStudent: map[string][]string{"student-1": {"sub-a"}},
		},
		subgroups: []models.Subgroup{
			{ID: "sub-a", Name: "English A"},
			{ID: "sub-b", Name: "English B"},
		},
	}
	svc := NewScheduleService(entries, slotListerStub{list: standardSlotList()}, subgroups, nil, nil)

	got, err := svc.GetSchedule(context.Background(), "class-7", weekRange(t), models.Viewer{Role: models.RoleStudent, UserID: "student-1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "whole", got[0].ID)
	assert.Equal(t, "mine", got[1].ID)
}

func TestGetScheduleAggregatesCollaboratorFailure(t *testing.T) {
	cases := map[string]struct {
		entries   entryReaderStub
		slots     slotListerStub
		subgroups subgroupReaderStub
	}{
		"entries store down": {
			entries: entryReaderStub{err: errors.New("connection refused")},
			slots:   slotListerStub{list: standardSlotList()},
		},
		"slot registry down": {
			slots: slotListerStub{err: errors.New("connection refused")},
		},
		"subgroup roster down": {
			slots:     slotListerStub{list: standardSlotList()},
			subgroups: subgroupReaderStub{err: errors.New("connection refused")},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewScheduleService(tc.entries, tc.slots, tc.subgroups, nil, nil)
			got, err := svc.GetSchedule(context.Background(), "class-7", weekRange(t), adminViewer())
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, appErrors.ErrScheduleUnavailable.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestGetScheduleValidatesInput(t *testing.T) {
	svc := NewScheduleService(entryReaderStub{}, slotListerStub{list: standardSlotList()}, subgroupReaderStub{}, nil, nil)

	_, err := svc.GetSchedule(context.Background(), "", weekRange(t), adminViewer())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.GetSchedule(context.Background(), "class-7", models.DateRange{}, adminViewer())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGetScheduleEmptyRangeIsEmptySuccess(t *testing.T) {
	svc := NewScheduleService(entryReaderStub{}, slotListerStub{list: standardSlotList()}, subgroupReaderStub{}, nil, nil)

	got, err := svc.GetSchedule(context.Background(), "class-7", weekRange(t), adminViewer())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildTimetableRows(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "e1", ScheduleDate: monday, SlotNumber: 1, SubjectID: "math", TeacherID: "t1", Room: "204"},
		{ID: "e2", ScheduleDate: monday, SlotNumber: 7, SubjectID: "art", TeacherID: "t2", Room: "101"},
	}}
	svc := NewScheduleService(entries, slotListerStub{list: standardSlotList()}, subgroupReaderStub{}, nil, nil)

	timetable, err := svc.BuildTimetable(context.Background(), "class-7", weekRange(t), adminViewer())
	require.NoError(t, err)
	require.Len(t, timetable.Rows, 2)
	assert.Equal(t, "2024-09-02", timetable.Rows[0].Date)
	assert.Equal(t, "Monday", timetable.Rows[0].Weekday)
	assert.Equal(t, "08:00-08:45", timetable.Rows[0].Time)
	assert.Equal(t, "unscheduled", timetable.Rows[1].Time)
}

func TestParseDateRange(t *testing.T) {
	dateRange, err := ParseDateRange("2024-09-02", "2024-09-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC), dateRange.From)
	assert.Equal(t, time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC), dateRange.To)

	_, err = ParseDateRange("02.09.2024", "2024-09-08")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = ParseDateRange("2024-09-08", "2024-09-02")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
