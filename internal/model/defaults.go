// Package model содержит значения по умолчанию для отсутствующих данных.
//
// Единая таблица "поле -> значение при отсутствии", применяемая при слиянии
// данных из трех источников:
//
//	year      -> текущий календарный год
//	rating    -> "0" (нет уверенной оценки)
//	runtime   -> 100 минут
//	boxOffice -> 0
package model

import "time"

const (
	// DefaultRating сигнализирует отсутствие уверенной оценки
	DefaultRating = "0"

	// DefaultRuntime подставляется при отсутствии или нечитаемости хронометража.
	// Осознанная политика: не пропускать NULL в фильтры по длительности.
	DefaultRuntime = 100

	// DefaultBoxOffice подставляется при отсутствии или нечисловых сборах
	DefaultBoxOffice = 0
)

// DefaultYear возвращает год по умолчанию при отсутствии года на странице фильма
func DefaultYear() int {
	return time.Now().Year()
}
