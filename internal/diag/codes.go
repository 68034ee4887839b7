package diag

// Code is the engine's identifier for a message, e.g. "W033".
type Code string

// Codes the driver itself cares about.
const (
	// CodeTooManyErrors precedes the nil sentinel when the engine gives up.
	CodeTooManyErrors Code = "E043"
	// CodeUnableToContinue is reported when the engine stops on a fatal parse error.
	CodeUnableToContinue Code = "E041"
)

// Severity derives the severity from the code's first letter.
func (c Code) Severity() Severity {
	if c == "" {
		return SevWarning
	}
	switch c[0] {
	case 'E':
		return SevError
	case 'I':
		return SevInfo
	default:
		return SevWarning
	}
}

func (c Code) String() string { return string(c) }
