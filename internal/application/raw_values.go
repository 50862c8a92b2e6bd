package application

// RawValueSet holds distinct hex strings taken from log topics and data.
type RawValueSet map[string]struct{}

func (s RawValueSet) Add(values ...string) {
	for _, value := range values {
		s[value] = struct{}{}
	}
}

// Union returns a new set holding the members of s and other.
func (s RawValueSet) Union(other RawValueSet) RawValueSet {
	out := make(RawValueSet, len(s)+len(other))
	for value := range s {
		out[value] = struct{}{}
	}
	for value := range other {
		out[value] = struct{}{}
	}
	return out
}
