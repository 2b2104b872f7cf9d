package domain

// TransformResult is the classified outcome of a transform call: either the
// normalized text or the diagnostic of source text the engine rejected.
// Construct it with Transformed or Invalid; the zero value is an Invalid
// result with an empty message.
type TransformResult struct {
	ok      bool
	text    string
	message string
}

// Transformed returns a successful result carrying the normalized text.
func Transformed(text string) TransformResult {
	return TransformResult{ok: true, text: text}
}

// Invalid returns a failed result carrying a human-readable diagnostic.
func Invalid(message string) TransformResult {
	return TransformResult{message: message}
}

// IsOk reports whether the engine accepted the source text.
func (r TransformResult) IsOk() bool {
	return r.ok
}

// Text returns the normalized text. It is empty for Invalid results.
func (r TransformResult) Text() string {
	return r.text
}

// Message returns the engine diagnostic. It is empty for successful results.
func (r TransformResult) Message() string {
	return r.message
}
