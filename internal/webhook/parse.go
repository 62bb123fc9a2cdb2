package webhook

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/estudiosur/site-backend/internal/model"
)

// ErrInvalidJSON marks a webhook body that is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON payload")

// ParseEvent decodes rawBody into a WebhookEvent. Malformed JSON yields an
// error wrapping ErrInvalidJSON and no partial event; payloads are never
// repaired or inferred.
func ParseEvent(rawBody []byte) (model.WebhookEvent, error) {
	var event model.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return model.WebhookEvent{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return event, nil
}
