package types

// Every CraftVine endpoint answers with exactly one of the two envelopes
// below, so clients can branch on the top-level key alone.

// SuccessEnvelope wraps a successful payload under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a failure: a stable machine code, a
// human-readable message, and optional structured details for codes that
// permit them (stock shortfalls carry the sellable maximum here).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under "error".
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
