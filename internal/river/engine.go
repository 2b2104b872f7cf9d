package river

// ErrorPrefix starts every result that reports invalid input.
const ErrorPrefix = "Error"

// Engine exposes the language through the string-in, string-out contract the
// sync pipeline consumes. Invalid input yields "Error: <message> at offset <n>"
// from both methods. It is stateless and safe for concurrent use.
type Engine struct{}

// Transform returns the canonical form of text.
func (Engine) Transform(text string) string {
	t, err := Parse(text)
	if err != nil {
		return ErrorPrefix + ": " + err.Error()
	}
	return t.String()
}

// ToGraph returns the DOT description of text.
func (Engine) ToGraph(text string) string {
	t, err := Parse(text)
	if err != nil {
		return ErrorPrefix + ": " + err.Error()
	}
	return Dot(t)
}
