package expr

import cfind "github.com/otuschhoff/cfind"

// And matches when both operands match. Right is not evaluated when Left
// fails.
type And struct {
	Left, Right Predicate
}

func (a *And) Match(entry *cfind.Entry) bool {
	return a.Left.Match(entry) && a.Right.Match(entry)
}

func (a *And) String() string {
	return "(" + a.Left.String() + " -a " + a.Right.String() + ")"
}

// Or matches when either operand matches. Right is not evaluated when Left
// matches.
type Or struct {
	Left, Right Predicate
}

func (o *Or) Match(entry *cfind.Entry) bool {
	return o.Left.Match(entry) || o.Right.Match(entry)
}

func (o *Or) String() string {
	return "(" + o.Left.String() + " -o " + o.Right.String() + ")"
}

// Not negates its operand.
type Not struct {
	Inner Predicate
}

func (n *Not) Match(entry *cfind.Entry) bool {
	return !n.Inner.Match(entry)
}

func (n *Not) String() string {
	return "! " + n.Inner.String()
}
