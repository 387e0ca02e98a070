package eval

// Kind classifies the result of evaluating an expression.
type Kind uint8

const (
	// KindEmpty means there was nothing to evaluate.
	KindEmpty Kind = iota
	// KindValue means evaluation produced a canonical decimal string.
	KindValue
	// KindInvalid means the expression is not syntactically well formed.
	KindInvalid
	// KindError means the expression is well formed but mathematically
	// undefined, such as division by zero or a non-finite result.
	KindError
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindValue:
		return "value"
	case KindInvalid:
		return "invalid"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of Evaluate.
// Outcome is an immutable value type; the zero value is Empty.
type Outcome struct {
	Kind  Kind
	Value string // canonical decimal string, set only when Kind is KindValue
}

// Tagged outcomes without a payload.
var (
	Empty   = Outcome{Kind: KindEmpty}
	Invalid = Outcome{Kind: KindInvalid}
	Error   = Outcome{Kind: KindError}
)

// ValueOf returns a value outcome carrying s.
func ValueOf(s string) Outcome {
	return Outcome{Kind: KindValue, Value: s}
}

// IsValue returns true if the outcome carries a numeric result.
func (o Outcome) IsValue() bool {
	return o.Kind == KindValue
}
