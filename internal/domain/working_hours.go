package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WorkingHoursDay рабочие часы одного дня
// Допустимые формы: строка "09:00-18:00", объект {"open": "09:00", "close": "18:00"},
// литерал "closed" / "выходной" или пустое значение.
// Значение другого JSON-типа (число, массив, объект с нестроковыми полями)
// сохраняется в Raw и при разборе считается некорректным
type WorkingHoursDay struct {
	Range string
	Open  string
	Close string
	Raw   json.RawMessage
}

// IsMalformed значение пришло в неподдерживаемой JSON-форме
func (d WorkingHoursDay) IsMalformed() bool {
	return len(d.Raw) > 0
}

// IsStructured день задан объектом {open, close}
func (d WorkingHoursDay) IsStructured() bool {
	return d.Open != "" || d.Close != ""
}

type workingHoursObject struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// UnmarshalJSON принимает и строку, и объект
func (d *WorkingHoursDay) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = WorkingHoursDay{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = WorkingHoursDay{Range: s}
		return nil
	}

	var obj workingHoursObject
	if len(data) == 0 || data[0] != '{' || json.Unmarshal(data, &obj) != nil {
		*d = WorkingHoursDay{Raw: append(json.RawMessage(nil), data...)}
		return nil
	}
	*d = WorkingHoursDay{Open: obj.Open, Close: obj.Close}
	return nil
}

// MarshalJSON сохраняет исходную форму значения
func (d WorkingHoursDay) MarshalJSON() ([]byte, error) {
	if d.IsMalformed() {
		return d.Raw, nil
	}
	if d.IsStructured() {
		return json.Marshal(workingHoursObject{Open: d.Open, Close: d.Close})
	}
	return json.Marshal(d.Range)
}

// WorkingHours карта "monday".."sunday" -> рабочие часы дня
// Отсутствующий день считается выходным
type WorkingHours map[string]WorkingHoursDay

// Day возвращает рабочие часы для дня недели
func (w WorkingHours) Day(d time.Weekday) WorkingHoursDay {
	return w[WeekdayKey(d)]
}

// ValidateKeys проверяет, что все ключи являются днями недели
func (w WorkingHours) ValidateKeys() error {
	for key := range w {
		if _, ok := ParseWeekdayKey(key); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWeekday, key)
		}
	}
	return nil
}

// Value реализует driver.Valuer (колонка JSONB)
func (w WorkingHours) Value() (driver.Value, error) {
	if w == nil {
		return "{}", nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan реализует sql.Scanner
func (w *WorkingHours) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*w = WorkingHours{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidWorkingHours, src)
	}

	parsed := WorkingHours{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
	}
	*w = parsed
	return nil
}
