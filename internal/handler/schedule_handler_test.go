package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ediary-dev/ediary-api/internal/middleware"
	"github.com/ediary-dev/ediary-api/internal/models"
	"github.com/ediary-dev/ediary-api/internal/service"
	"github.com/ediary-dev/ediary-api/pkg/response"
)

type entryReaderStub struct {
	entries []models.ScheduleEntry
	err     error
}

func (s entryReaderStub) ListByClassAndRange(ctx context.Context, classID string, dateRange models.DateRange) ([]models.ScheduleEntry, error) {
	return s.entries, s.err
}

type subgroupReaderStub struct{}

func (subgroupReaderStub) ListByClass(ctx context.Context, classID string) ([]models.Subgroup, error) {
	return nil, nil
}

func (subgroupReaderStub) ListMemberships(ctx context.Context, studentID string) ([]string, error) {
	return nil, nil
}

func (subgroupReaderStub) ListChildIDs(ctx context.Context, parentID string) ([]string, error) {
	return nil, nil
}

func newScheduleService(entries entryReaderStub) *service.ScheduleService {
	slots := service.NewTimeSlotService(standardDefaults(), &overrideRepoStub{}, nil, nil, nil)
	return service.NewScheduleService(entries, slots, subgroupReaderStub{}, nil, nil)
}

func newScheduleTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "class-7"}}
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	return c, w
}

func TestScheduleHandlerGet(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "e1", ClassID: "class-7", ScheduleDate: monday, SlotNumber: 1, TeacherID: "t1"},
	}}
	h := NewScheduleHandler(newScheduleService(entries), true)

	c, w := newScheduleTestContext(t, "/classes/class-7/schedule?from=2024-09-02&to=2024-09-08")

	h.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.NotNil(t, envelope.Data)
}

func TestScheduleHandlerGetRejectsBadRange(t *testing.T) {
	h := NewScheduleHandler(newScheduleService(entryReaderStub{}), true)

	c, w := newScheduleTestContext(t, "/classes/class-7/schedule?from=bogus&to=2024-09-08")

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerExportCSV(t *testing.T) {
	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	entries := entryReaderStub{entries: []models.ScheduleEntry{
		{ID: "e1", ClassID: "class-7", ScheduleDate: monday, SlotNumber: 1, SubjectID: "math", TeacherID: "t1", Room: "204"},
	}}
	h := NewScheduleHandler(newScheduleService(entries), true)

	c, w := newScheduleTestContext(t, "/classes/class-7/schedule/export?from=2024-09-02&to=2024-09-08&format=csv")

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "math")
}

func TestScheduleHandlerExportDisabled(t *testing.T) {
	h := NewScheduleHandler(newScheduleService(entryReaderStub{}), false)

	c, w := newScheduleTestContext(t, "/classes/class-7/schedule/export?from=2024-09-02&to=2024-09-08")

	h.Export(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandlerExportBadFormat(t *testing.T) {
	h := NewScheduleHandler(newScheduleService(entryReaderStub{}), true)

	c, w := newScheduleTestContext(t, "/classes/class-7/schedule/export?from=2024-09-02&to=2024-09-08&format=xlsx")

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
