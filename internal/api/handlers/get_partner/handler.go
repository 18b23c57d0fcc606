package get_partner

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/api/middleware"
	"github.com/m04kA/SMC-TireService/internal/service/partners"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "партнер не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/partners/{partnerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := handlers.PathID(r, "partnerId")
	if err != nil {
		h.logger.Warn("GET /partners/{id} - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetByID(r.Context(), actor, partnerID)
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrPartnerNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, partners.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /partners/{id} - Failed to get partner: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
