package types

// SuccessEnvelope wraps every 2xx payload as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body; Details only carries code-approved context.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewErrorEnvelope builds an error body, dropping nil details.
func NewErrorEnvelope(code, message string, details any) ErrorEnvelope {
	env := ErrorEnvelope{Error: APIError{Code: code, Message: message}}
	if details != nil {
		env.Error.Details = details
	}
	return env
}
