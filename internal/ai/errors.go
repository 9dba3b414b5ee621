package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse means no parseable JSON payload was found in
	// the model output after every extraction strategy failed.
	ErrMalformedResponse = errors.New("ответ не является валидным JSON")

	// ErrProviderParse means the provider answered with 2xx but its
	// content could not be interpreted as a structured payload.
	ErrProviderParse = errors.New("не удалось разобрать JSON ответ от ИИ")
)

// HTTPError is a non-success transport response from a model backend.
// The raw body is preserved verbatim for diagnostics.
type HTTPError struct {
	Provider   string
	Status     int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Ошибка API %s: %d %s. %s", e.Provider, e.Status, e.StatusText, e.Body)
}
