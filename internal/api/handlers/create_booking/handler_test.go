package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/domain"
	createBooking "github.com/m04kA/SMC-TireService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TireService/pkg/logger"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{
	"servicePointId": 3,
	"bookingDate": "2025-03-10",
	"startTime": "10:00",
	"customerName": "Иван",
	"customerPhone": "+7 900 000-00-00"
}`

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
}

func TestHandler_Created(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	scheduleID := int64(11)
	booking := &domain.Booking{
		ID:             1,
		Reference:      "3f0c6b1e-8a59-4a8e-9d0e-0a4a3b1f2c11",
		ServicePointID: 3,
		ScheduleID:     &scheduleID,
		BookingDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      types.TimeString("10:00"),
		EndTime:        types.TimeString("10:30"),
		Status:         domain.BookingConfirmed,
		CustomerName:   "Иван",
		CustomerPhone:  "+7 900 000-00-00",
	}

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ServicePointID == 3 && req.StartTime.String() == "10:00" && req.Actor == nil
	})).Return(&createBooking.Response{Booking: booking, TimeSlotID: 7, Remaining: 2}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(validBody))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-03-10", resp.BookingDate)
	assert.Equal(t, "10:30", resp.EndTime)
	assert.Equal(t, int64(7), resp.TimeSlotID)
	assert.Equal(t, 2, resp.RemainingSpots)
	uc.AssertExpectations(t)
}

func TestHandler_AttachesActor(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.Actor != nil && req.Actor.UserID == 42
	})).Return(nil, createBooking.ErrSlotNotAvailable)

	req := newRequest(validBody)
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 42, Role: domain.RoleClient}))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"servicePointId":`},
		{name: "unknown field", body: `{"servicePointId": 3, "foo": 1}`},
		{name: "bad date", body: `{"servicePointId": 3, "bookingDate": "10.03.2025", "startTime": "10:00"}`},
		{name: "bad time", body: `{"servicePointId": 3, "bookingDate": "2025-03-10", "startTime": "25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.Nop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot full", err: createBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "concurrent", err: createBooking.ErrConcurrentBooking, wantStatus: http.StatusConflict},
		{name: "not working", err: createBooking.ErrServicePointNotWorking, wantStatus: http.StatusConflict},
		{name: "no service point", err: createBooking.ErrServicePointNotFound, wantStatus: http.StatusNotFound},
		{name: "past date", err: createBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "too far", err: createBooking.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "off slot start", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "too late", err: createBooking.ErrTooLateToBook, wantStatus: http.StatusBadRequest},
		{name: "validation", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.Nop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(validBody))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
