package fetcher

import (
	"errors"
	"fmt"
)

// FetchError описывает сбой получения страницы: таймаут навигации,
// недоступность браузерной сессии или отказ соединения
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError проверяет, является ли ошибка ошибкой получения страницы
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
