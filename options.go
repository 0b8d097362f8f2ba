package nemesis

import "fmt"

// Mode selects which of the two encodings the encoder may produce.
type Mode int

// Encoding mode constants.
const (
	ModeAuto   Mode = iota // Try both encodings and keep the smaller one (default).
	ModeNormal             // Only encode the data as-is.
	ModeXor                // Only encode the data after applying DiffLanes.
)

func (mode Mode) String() string {
	switch mode {
	case ModeAuto:
		return "auto"
	case ModeNormal:
		return "normal"
	case ModeXor:
		return "xor"
	default:
		return fmt.Sprintf("Mode(%d)", int(mode))
	}
}

// ParseMode converts the name of a mode, as returned by [Mode.String], back
// into a [Mode].
func ParseMode(name string) (Mode, error) {
	for _, mode := range []Mode{ModeAuto, ModeNormal, ModeXor} {
		if mode.String() == name {
			return mode, nil
		}
	}
	return ModeAuto, ErrInvalidArgument.WithMessage(
		fmt.Sprintf("unknown encoding mode %q", name))
}

// Options configures the encoder.
type Options struct {
	// Mode restricts which encodings are tried.
	Mode Mode
	// Parallel computes both encodings concurrently when Mode is ModeAuto. The
	// output is the same either way.
	Parallel bool
}

// DefaultOptions returns options trying both encodings one after the other.
func DefaultOptions() *Options {
	return &Options{
		Mode:     ModeAuto,
		Parallel: false,
	}
}
