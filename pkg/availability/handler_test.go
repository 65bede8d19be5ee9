package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, context.Context, map[string]string) {
	service, calendarRepo, ctx, teammate := setupServiceTest(t)
	_, err := calendarRepo.StoreEvent(ctx, teammate.Id, busyEvent("08:00", "09:00"))
	require.NoError(t, err)
	return NewHandler(service), ctx, map[string]string{"agentUid": teammate.Uid}
}

func availabilityRequest(handler *Handler, ctx context.Context, vars map[string]string, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req.WithContext(ctx), vars)
	w := httptest.NewRecorder()
	handler.GetTeammateAvailability(w, req)
	return w
}

func TestGetTeammateAvailability(t *testing.T) {
	// Setup
	handler, ctx, vars := setupHandlerTest(t)

	// When
	w := availabilityRequest(handler, ctx, vars, "/availability?date="+testDate)

	// Then
	require.Equal(t, http.StatusOK, w.Code)
	var dto TeammateAvailabilityDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, testDate, dto.Date)
	assert.Equal(t, "Jordan", dto.TeammateName)
	require.Len(t, dto.BusyTimes, 1)
	assert.Equal(t, "08:00", dto.BusyTimes[0].Start)
	require.Len(t, dto.FreeSlots, 2)
	assert.Equal(t, "06:00", dto.FreeSlots[0].Start)
	assert.Equal(t, 120, dto.FreeSlots[0].DurationMinutes)
	assert.Equal(t, "09:00", dto.FreeSlots[1].Start)
	assert.Equal(t, 780, dto.FreeSlots[1].DurationMinutes)
}

func TestGetTeammateAvailability_InvalidDate(t *testing.T) {
	// Setup
	handler, ctx, vars := setupHandlerTest(t)

	// When
	w := availabilityRequest(handler, ctx, vars, "/availability?date=bogus")

	// Then
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Contains(t, errResponse.Error, "date")
}

func TestGetTeammateAvailability_UnknownTeammate(t *testing.T) {
	// Setup
	handler, ctx, _ := setupHandlerTest(t)

	// When
	w := availabilityRequest(handler, ctx, map[string]string{"agentUid": "missing"}, "/availability?date="+testDate)

	// Then
	assert.Equal(t, http.StatusNotFound, w.Code)
}
