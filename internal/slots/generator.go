package slots

import "github.com/m04kA/SMC-TireService/pkg/types"

// Range слот [Start, End)
type Range struct {
	Start types.TimeString
	End   types.TimeString
}

// Generate нарезает интервал на слоты фиксированной длины
// Неполный последний слот отбрасывается.
// Для duration <= 0, nil-интервала или open >= close возвращается пустой список
func Generate(interval *Interval, durationMinutes int) []Range {
	result := make([]Range, 0)
	if interval == nil || durationMinutes <= 0 {
		return result
	}

	openMin, closeMin := interval.Open.Minutes(), interval.Close.Minutes()
	if openMin < 0 || closeMin < 0 || openMin >= closeMin {
		return result
	}

	for cursor := openMin; cursor+durationMinutes <= closeMin; cursor += durationMinutes {
		start, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			break
		}
		end, err := types.NewTimeStringFromMinutes(cursor + durationMinutes)
		if err != nil {
			break
		}
		result = append(result, Range{Start: start, End: end})
	}

	return result
}
