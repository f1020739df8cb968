package omdb

import (
	"strconv"
	"strings"

	"moviewatch/internal/model"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// parseBoxOffice разбирает сборы вида "$1,234,567".
// "N/A", пустое или нечисловое значение дает 0.
func parseBoxOffice(text string) int64 {
	cleaned := currencyReplacer.Replace(strings.TrimSpace(text))
	if cleaned == "" || cleaned == "N/A" {
		return model.DefaultBoxOffice
	}

	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return model.DefaultBoxOffice
	}

	return value
}

// parseRuntime разбирает хронометраж вида "169 min" по ведущему числу.
// Отсутствующее или нечитаемое значение дает 100 минут.
func parseRuntime(text string) int {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return model.DefaultRuntime
	}

	value, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.DefaultRuntime
	}

	return value
}
