package railways

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport возвращается при сетевых ошибках и не-2xx статусах от railway API
	ErrTransport = errors.New("railways client: transport error")

	// ErrMalformedResponse возвращается, когда успешный ответ не соответствует ожидаемой схеме
	ErrMalformedResponse = errors.New("railways client: malformed response")

	// ErrPartialInbound возвращается, когда обратное направление задано не полностью
	ErrPartialInbound = errors.New("railways client: incomplete inbound leg")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("railways client: internal error")
)

// APIError ошибка, которую railway API вернул в конверте ответа
// (success=false). ID и Message передаются вызывающему без изменений.
type APIError struct {
	ID      string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("railway API error %s: %s", e.ID, e.Message)
}
