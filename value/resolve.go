package value

// Resolve combines the states of every driver on one net into a single
// observed state: a real conflict beats everything, then an asserted
// ONE or ZERO beats high-impedance or unknown. It is total, commutative,
// associative and idempotent in its inputs.
func Resolve(drivers []State) State {
	sawOne, sawZero, sawUnknown := false, false, false

	for _, d := range drivers {
		switch d {
		case Conflict:
			return Conflict
		case ONE:
			sawOne = true
		case ZERO:
			sawZero = true
		case Unknown:
			sawUnknown = true
		case HiZ:
			// non-driving; contributes nothing
		}
	}

	if sawZero && sawOne {
		return Conflict
	}
	if sawOne {
		return ONE
	}
	if sawZero {
		return ZERO
	}
	if sawUnknown {
		return Unknown
	}
	return HiZ
}
