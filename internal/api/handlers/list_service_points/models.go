package list_service_points

import (
	"strconv"

	"github.com/m04kA/SMC-TireService/internal/service/servicepoints/models"
)

// ToServiceRequest формирует фильтр из query параметров
func ToServiceRequest(partnerIDStr, statusStr string) (*models.ListServicePointsRequest, error) {
	req := &models.ListServicePointsRequest{}

	// Парсим partnerId если указан
	if partnerIDStr != "" {
		partnerID, err := strconv.ParseInt(partnerIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.PartnerID = &partnerID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
