package lattice

// Truth models what is known about the value of a boolean expression.
type Truth int

const (
	Unknown Truth = iota
	True
	False
)

func (v Truth) String() string {
	switch v {
	case Unknown:
		return "Unknown"
	case True:
		return "True"
	case False:
		return "False"
	default:
		return "Invalid"
	}
}

// Of lifts a known boolean.
func Of(b bool) Truth {
	if b {
		return True
	}
	return False
}

// Known reports whether v is True or False.
func (v Truth) Known() bool { return v == True || v == False }

// Not returns the negation; Unknown stays Unknown.
func Not(v Truth) Truth {
	switch v {
	case True:
		return False
	case False:
		return True
	}
	return Unknown
}

// And is short-circuit conjunction: False wins over Unknown.
func And(vs ...Truth) Truth {
	out := True
	for _, v := range vs {
		switch v {
		case False:
			return False
		case Unknown:
			out = Unknown
		}
	}
	return out
}

// Or is short-circuit disjunction: True wins over Unknown.
func Or(vs ...Truth) Truth {
	out := False
	for _, v := range vs {
		switch v {
		case True:
			return True
		case Unknown:
			out = Unknown
		}
	}
	return out
}

// Join merges the facts of two control flow paths.
func Join(a, b Truth) Truth {
	if a == b {
		return a
	}
	return Unknown
}
