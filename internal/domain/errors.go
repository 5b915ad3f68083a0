package domain

import "errors"

var (
	// ErrCourseNotFound курс отсутствует в каталоге
	ErrCourseNotFound = errors.New("course not found")
	// ErrPaymentNotFound платёж с такой меткой не выдавался
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrProviderUnavailable платёжный провайдер не настроен или недоступен
	ErrProviderUnavailable = errors.New("payment provider unavailable")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}
