package mines

import "fmt"

type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Outcome] implements [encoding.TextMarshaler]
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*o = InProgress
	case "won":
		*o = Won
	case "lost":
		*o = Lost
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}
