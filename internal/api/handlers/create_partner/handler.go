package create_partner

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/partners"
	"github.com/m04kA/SMC-TireService/internal/service/partners/models"
)

const (
	msgInvalidRequest = "некорректный формат запроса"
	msgInvalidInput   = "некорректные данные партнера"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "создавать партнеров может только администратор"
)

type Handler struct {
	service PartnerService
	logger  Logger
}

func NewHandler(service PartnerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/partners
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreatePartnerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partners - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrAccessDenied):
			h.logger.Warn("POST /partners - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, partners.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /partners - Failed to create partner: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners - Partner created: partner_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
