package httpbind

import "net/http"

// SubmitEvent adapts an HTTP request to form.SubmitEvent. There is no browser
// default to cancel; PreventDefault only records the call.
type SubmitEvent struct {
	Request   *http.Request
	prevented bool
}

// NewSubmitEvent wraps r.
func NewSubmitEvent(r *http.Request) *SubmitEvent {
	return &SubmitEvent{Request: r}
}

// PreventDefault implements form.SubmitEvent.
func (e *SubmitEvent) PreventDefault() {
	e.prevented = true
}

// Prevented reports whether PreventDefault was called.
func (e *SubmitEvent) Prevented() bool {
	return e.prevented
}
