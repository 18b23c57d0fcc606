package generate_time_slots

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/domain"
	generateTimeSlots "github.com/m04kA/SMC-TireService/internal/usecase/generate_time_slots"
	"github.com/m04kA/SMC-TireService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *generateTimeSlots.Request) (*generateTimeSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generateTimeSlots.Response), args.Error(1)
}

func newRequest(body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/service-points/3/time-slots/generate", http.NoBody)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/v1/service-points/3/time-slots/generate", strings.NewReader(body))
	}
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	partnerID := int64(2)
	return req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 9, Role: domain.RolePartner, PartnerID: &partnerID}))
}

func TestHandler_EmptyBodyUsesServicePointSettings(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *generateTimeSlots.Request) bool {
		return req.ServicePointID == 3 && req.WorkingHours == nil && req.SlotDurationMinutes == nil &&
			req.Actor != nil && req.Actor.UserID == 9
	})).Return(&generateTimeSlots.Response{ServicePointID: 3, SlotDurationMinutes: 30, TotalSlots: 96}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalSlots":96`)
	uc.AssertExpectations(t)
}

func TestHandler_OverrideDuration(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *generateTimeSlots.Request) bool {
		return req.SlotDurationMinutes != nil && *req.SlotDurationMinutes == 45
	})).Return(&generateTimeSlots.Response{ServicePointID: 3, SlotDurationMinutes: 45}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(`{"slotDurationMinutes": 45}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		result     *generateTimeSlots.Response
		wantStatus int
	}{
		{name: "not found", err: generateTimeSlots.ErrServicePointNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign point", err: generateTimeSlots.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "duration", err: generateTimeSlots.ErrInvalidSlotDuration, wantStatus: http.StatusBadRequest},
		{
			name:       "partial failure",
			err:        fmt.Errorf("%w: tuesday: boom", generateTimeSlots.ErrInternal),
			result:     &generateTimeSlots.Response{Days: []generateTimeSlots.DayResult{{Weekday: "monday"}}},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.Nop())
			if tt.result != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(tt.result, tt.err)
			} else {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(""))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
