package userservice

import "strings"

// Car модель автомобиля из UserService
type Car struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	IsSelected   bool   `json:"is_selected"`
}

// DisplayModel марка и модель одной строкой: "Toyota Camry"
func (c *Car) DisplayModel() string {
	return strings.TrimSpace(c.Brand + " " + c.Model)
}
