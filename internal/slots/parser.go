package slots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TireService/internal/domain"
	"github.com/m04kA/SMC-TireService/pkg/types"
)

// ErrMalformed значение рабочих часов не удалось разобрать
// Вызывающий код обязан трактовать его как выходной
var ErrMalformed = errors.New("slots: malformed working hours")

// closedLiterals значения, означающие выходной день
var closedLiterals = map[string]struct{}{
	"closed":   {},
	"выходной": {},
}

// Interval рабочий интервал дня [Open, Close)
type Interval struct {
	Open  types.TimeString
	Close types.TimeString
}

// ParseDay разбирает рабочие часы одного дня
// nil, nil - день выходной
// nil, ErrMalformed - значение некорректно
func ParseDay(day domain.WorkingHoursDay) (*Interval, error) {
	if day.IsMalformed() {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, day.Raw)
	}
	if day.IsStructured() {
		return parsePair(day.Open, day.Close)
	}

	raw := strings.TrimSpace(day.Range)
	if raw == "" {
		return nil, nil
	}
	if _, ok := closedLiterals[strings.ToLower(raw)]; ok {
		return nil, nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	return parsePair(parts[0], parts[1])
}

func parsePair(openRaw, closeRaw string) (*Interval, error) {
	openTime, err := types.NewTimeStringFromString(openRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q", ErrMalformed, openRaw)
	}
	closeTime, err := types.NewTimeStringFromString(closeRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: close %q", ErrMalformed, closeRaw)
	}
	return &Interval{Open: openTime, Close: closeTime}, nil
}

// ValidateWorkingHours проверяет все дни недели: каждый должен разбираться или быть выходным
func ValidateWorkingHours(wh domain.WorkingHours) error {
	if err := wh.ValidateKeys(); err != nil {
		return err
	}
	for key, day := range wh {
		interval, err := ParseDay(day)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if interval != nil && !interval.Open.IsBefore(interval.Close) {
			return fmt.Errorf("%s: %w: open must be before close", key, ErrMalformed)
		}
	}
	return nil
}
