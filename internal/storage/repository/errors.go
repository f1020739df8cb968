package repository

import (
	"errors"
	"fmt"
)

// PersistenceError описывает сбой операции с хранилищем.
// Пробрасывается наружу: испорченный прогон должен останавливаться
// на кандидате явно, а не молча занижать счетчики.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError проверяет, является ли ошибка ошибкой хранилища
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
