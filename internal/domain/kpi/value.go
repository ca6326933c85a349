package kpi

// ValueKind tells formatting code which branch of a Value is populated.
type ValueKind uint8

const (
	KindNone ValueKind = iota
	KindText
	KindInt
	KindFloat
)

// Value is one metric read from a PlayerRow by column key.
// The zero Value is the "no value" variant.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

var NoValue = Value{}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func IntValue(n int64) Value {
	return Value{kind: KindInt, num: float64(n)}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, num: f}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) Missing() bool {
	return v.kind == KindNone
}

// Number returns the numeric payload for int and float values.
func (v Value) Number() (float64, bool) {
	if v.kind != KindInt && v.kind != KindFloat {
		return 0, false
	}
	return v.num, true
}

func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Raw returns a JSON-friendly payload: nil for missing values.
func (v Value) Raw() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return int64(v.num)
	case KindFloat:
		return v.num
	default:
		return nil
	}
}

func fromString(o Optional[string]) Value {
	if s, ok := o.Get(); ok {
		return TextValue(s)
	}
	return NoValue
}

func fromInt(o Optional[int64]) Value {
	if n, ok := o.Get(); ok {
		return IntValue(n)
	}
	return NoValue
}

func fromFloat(o Optional[float64]) Value {
	if f, ok := o.Get(); ok {
		return FloatValue(f)
	}
	return NoValue
}
