package create_order

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrPartialInbound возвращается, когда обратное направление задано
	// не целиком (journey + wagon + seat задаются вместе или никак)
	ErrPartialInbound = errors.New("create_order: incomplete inbound leg")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
