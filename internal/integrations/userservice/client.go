package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	selectedCarPath = "/internal/users/%d/cars/selected"
	carCacheSize    = 1024
	errorBodyLimit  = 1024
)

// Client ходит в UserService за гаражом клиента
// Выбранные автомобили кешируются на cacheTTL (0 - без кеша)
type Client struct {
	baseURL    string
	httpClient *http.Client
	cars       *expirable.LRU[int64, Car]
	log        Logger
}

func NewClient(baseURL string, timeout, cacheTTL time.Duration, log Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	if cacheTTL > 0 {
		c.cars = expirable.NewLRU[int64, Car](carCacheSize, nil, cacheTTL)
	}
	return c
}

// GetSelectedCar выбранный автомобиль пользователя
// 404 от UserService превращается в ErrCarNotFound
func (c *Client) GetSelectedCar(ctx context.Context, userID int64) (*Car, error) {
	if c.cars != nil {
		if car, ok := c.cars.Get(userID); ok {
			return &car, nil
		}
	}

	var car Car
	if err := c.getJSON(ctx, fmt.Sprintf(selectedCarPath, userID), &car); err != nil {
		return nil, err
	}
	if car.LicensePlate == "" && car.Model == "" {
		return nil, fmt.Errorf("%w: empty car for user_id=%d", ErrInvalidResponse, userID)
	}

	if c.cars != nil {
		c.cars.Add(userID, car)
	}
	return &car, nil
}

// GetSelectedCarWithGracefulDegradation не пропускает наружу сетевые ошибки:
// все, кроме ErrCarNotFound, заворачиваются в ErrServiceDegraded
func (c *Client) GetSelectedCarWithGracefulDegradation(ctx context.Context, userID int64) (*Car, error) {
	car, err := c.GetSelectedCar(ctx, userID)
	switch {
	case err == nil:
		c.log.Info("Selected car resolved: user_id=%d, license_plate=%s", userID, car.LicensePlate)
		return car, nil
	case errors.Is(err, ErrCarNotFound):
		c.log.Info("User has no selected car: user_id=%d", userID)
		return nil, err
	default:
		c.log.Error("UserService degraded: user_id=%d, error=%v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d: %v", ErrServiceDegraded, userID, err)
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrCarNotFound
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}
	return nil
}
