package get_service_point_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, startDate/endDate - период
func ToServiceRequest(
	servicePointID int64,
	dateStr string,
	startDateStr string,
	endDateStr string,
	statusStr string,
	includeCancelledStr string,
) (*models.GetServicePointBookingsRequest, error) {
	req := &models.GetServicePointBookingsRequest{
		ServicePointID:   servicePointID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	if dateStr != "" {
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		start, err := handlers.ParseOptionalDate(startDateStr)
		if err != nil {
			return nil, err
		}
		end, err := handlers.ParseOptionalDate(endDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = start
		req.EndDate = end
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
