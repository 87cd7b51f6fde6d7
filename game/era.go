package game

import "fmt"

// Era is one of the three mutually exclusive player modes. The ordering is
// cyclic: Next and Prev wrap around.
type Era uint8

const (
	EraPrehistoric Era = iota
	EraMedieval
	EraFuturistic

	eraCount = 3
)

func (e Era) String() string {
	switch e {
	case EraPrehistoric:
		return "prehistoric"
	case EraMedieval:
		return "medieval"
	case EraFuturistic:
		return "futuristic"
	default:
		return "unknown"
	}
}

func (e Era) Next() Era {
	return (e + 1) % eraCount
}

func (e Era) Prev() Era {
	return (e + eraCount - 1) % eraCount
}

// ParseEra maps the serialized form back to an Era.
func ParseEra(raw string) (Era, error) {
	switch raw {
	case "prehistoric":
		return EraPrehistoric, nil
	case "medieval":
		return EraMedieval, nil
	case "futuristic":
		return EraFuturistic, nil
	default:
		return EraMedieval, fmt.Errorf("unknown era %q", raw)
	}
}
