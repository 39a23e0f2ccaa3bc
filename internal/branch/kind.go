package branch

type BranchKind int

const (
	Empty BranchKind = iota

	// Return branches return from the current method
	Return

	// Throw branches raise an exception
	Throw

	// Continue branches continue a surrounding loop
	Continue

	// Break branches break out of a surrounding loop, switch or label
	Break

	// Exit exits the current program
	Exit

	// Regular branches not categorized as any of the above
	Regular
)

func (k BranchKind) IsEmpty() bool  { return k == Empty }
func (k BranchKind) Returns() bool  { return k == Return }
func (k BranchKind) Branch() Branch { return Branch{BranchKind: k} }

// Exits reports whether the branch leaves the method: statements after it
// in the same list are unreachable.
func (k BranchKind) Exits() bool {
	return k == Return || k == Throw
}

func (k BranchKind) Deviates() bool {
	switch k {
	case Empty, Regular:
		return false
	case Return, Throw, Continue, Break, Exit:
		return true
	default:
		panic("unreachable")
	}
}

func (k BranchKind) String() string {
	switch k {
	case Empty:
		return ""
	case Regular:
		return "..."
	case Return:
		return "... return"
	case Throw:
		return "... throw"
	case Continue:
		return "... continue"
	case Break:
		return "... break"
	case Exit:
		return "... System.exit()"
	default:
		panic("invalid kind")
	}
}
