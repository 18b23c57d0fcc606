package list_schedules

import (
	"strconv"

	"github.com/m04kA/SMC-TireService/internal/api/handlers"
	"github.com/m04kA/SMC-TireService/internal/service/schedules/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(servicePointID int64, dateStr, postStr, statusStr string) (*models.ListSchedulesRequest, error) {
	date, err := handlers.ParseOptionalDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.ListSchedulesRequest{
		ServicePointID: servicePointID,
		Date:           date,
	}

	if postStr != "" {
		post, err := strconv.Atoi(postStr)
		if err != nil {
			return nil, err
		}
		req.PostNumber = &post
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
