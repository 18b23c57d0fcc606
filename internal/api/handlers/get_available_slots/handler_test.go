package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TireService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func newRequest(id, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/service-points/"+id+"/available-slots?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestHandler_Slots(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{
		ServicePointID: 3,
		Date:           date,
		IncludeFull:    true,
	}).Return(&getAvailableSlots.Response{
		ServicePointID: 3,
		Date:           date,
		Working:        true,
		Slots: []domain.AvailableSlot{
			{TimeSlotID: 1, StartTime: "09:00", EndTime: "09:30", Booked: 1, Capacity: 4},
			{TimeSlotID: 2, StartTime: "09:30", EndTime: "10:00", Booked: 4, Capacity: 4},
		},
	}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("3", "date=2025-03-10&includeFull=true"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.True(t, resp.Working)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 3, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 0, resp.Slots[1].AvailableSpots)
	assert.Equal(t, "10:00", resp.Slots[1].EndTime)
	uc.AssertExpectations(t)
}

func TestHandler_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		query      string
		useCaseErr error
		wantStatus int
	}{
		{name: "bad id", id: "x", query: "date=2025-03-10", wantStatus: http.StatusBadRequest},
		{name: "missing date", id: "3", wantStatus: http.StatusBadRequest},
		{name: "bad date", id: "3", query: "date=10-03-2025", wantStatus: http.StatusBadRequest},
		{name: "bad includeFull", id: "3", query: "date=2025-03-10&includeFull=maybe", wantStatus: http.StatusBadRequest},
		{name: "past date", id: "3", query: "date=2025-03-10", useCaseErr: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "too far", id: "3", query: "date=2025-03-10", useCaseErr: getAvailableSlots.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "not found", id: "3", query: "date=2025-03-10", useCaseErr: getAvailableSlots.ErrServicePointNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", id: "3", query: "date=2025-03-10", useCaseErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.Nop())
			if tt.useCaseErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.useCaseErr)
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.query))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
