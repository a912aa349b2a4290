package gateway

import "fmt"

// ErrUnavailable indicates the hosted gateway is down or unreachable.
// Callers downgrade to a fallback — the error never reaches the user raw.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway unavailable: %v", e.Err)
	}
	return "gateway unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrUnsupported indicates the selected provider does not serve the
// requested capability. Multimodal operations need the Gemini provider.
type ErrUnsupported struct {
	Capability string
	Provider   string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("%s is not supported by the %s provider", e.Capability, e.Provider)
}

// ErrEmptyResponse indicates the model returned no usable content.
type ErrEmptyResponse struct {
	Capability string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("%s: empty model response", e.Capability)
}
