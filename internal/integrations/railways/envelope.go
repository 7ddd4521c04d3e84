package railways

import (
	"encoding/json"
	"fmt"
)

// apiErrorBody описание ошибки внутри конверта ответа
type apiErrorBody struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// envelope верхнеуровневая обертка каждого ответа railway API:
// {success: true, data: {...}} либо
// {success: false, error: {...}} / {success: false, errors: [{...}, ...]}
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiErrorBody   `json:"error"`
	Errors  []apiErrorBody  `json:"errors"`
}

// decodeEnvelope декодирует тело ответа, проверяет конверт и возвращает data.
// Вызывается сразу после каждого запроса, до любого маппинга.
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: failed to decode envelope: %v", ErrMalformedResponse, err)
	}

	if err := env.check(); err != nil {
		return nil, err
	}

	return env.Data, nil
}

// check возвращает nil при success=true. Иначе предпочитает единичный
// error, затем первый элемент errors. Конверт без описания ошибки
// считается некорректным ответом.
func (e *envelope) check() error {
	if e.Success {
		return nil
	}

	switch {
	case e.Error != nil:
		return &APIError{ID: e.Error.ID, Message: e.Error.Message}
	case len(e.Errors) > 0:
		return &APIError{ID: e.Errors[0].ID, Message: e.Errors[0].Message}
	default:
		return fmt.Errorf("%w: envelope reports failure without error descriptor", ErrMalformedResponse)
	}
}
