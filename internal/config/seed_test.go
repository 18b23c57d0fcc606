package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TireService/internal/domain"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `
schedule_days: 7
partners:
  - name: "Шиномонтаж Север"
    contact_phone: "+7 900 111-22-33"
    service_points:
      - name: "Точка на Ленина"
        address: "ул. Ленина, 1"
        post_count: 3
        slot_duration_minutes: 30
        working_hours:
          monday: "09:00-18:00"
          sunday: "closed"
`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)

	assert.Equal(t, 7, seed.ScheduleDays)
	require.Len(t, seed.Partners, 1)
	require.Len(t, seed.Partners[0].ServicePoints, 1)

	hours := seed.Partners[0].ServicePoints[0].Hours()
	assert.Equal(t, domain.WorkingHoursDay{Range: "09:00-18:00"}, hours["monday"])
	assert.Equal(t, domain.WorkingHoursDay{Range: "closed"}, hours["sunday"])
}

func TestLoadSeed_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no partners", content: "partners: []"},
		{name: "missing phone", content: "partners:\n  - name: A\n"},
		{name: "unknown weekday", content: `
partners:
  - name: A
    contact_phone: "1"
    service_points:
      - name: P
        working_hours:
          funday: "09:00-18:00"
`},
		{name: "negative days", content: "schedule_days: -1\npartners:\n  - name: A\n    contact_phone: \"1\"\n"},
		{name: "broken yaml", content: "partners: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeed(writeSeed(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
