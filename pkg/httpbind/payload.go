package httpbind

import (
	"strings"

	"github.com/goliatone/go-formstate/pkg/form"
)

// ErrorPayload converts the controller's error map into the field error
// shape used by JSON APIs: trimmed, de-duplicated messages keyed by field.
// It returns nil when there are no errors.
func ErrorPayload(errs map[string]form.ErrorMessage) map[string][]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for key, msg := range errs {
		text := msg.Text
		if strings.TrimSpace(text) == "" {
			text = string(msg.Kind)
		}
		if messages := normalizeMessages([]string{text}); len(messages) > 0 {
			out[key] = messages
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MergePayload combines field error payloads, normalising each field's
// messages while preserving order.
func MergePayload(payloads ...map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, payload := range payloads {
		for key, messages := range payload {
			out[key] = append(out[key], messages...)
		}
	}
	for key, messages := range out {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			delete(out, key)
			continue
		}
		out[key] = normalized
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
