// Package matcher implements the compiled regex tree and its backtracking
// evaluator. A tree is built once by the parser package and is immutable
// thereafter; evaluations only ever allocate transient Match values and a
// transient capture mapping.
package matcher

// Kind tags which variant a Node holds.
type Kind int

const (
	KindSingleChar Kind = iota
	KindStart
	KindEnd
	KindCharClass
	KindWildcard
	KindSequence
	KindMultiple
	KindGroup
	KindGroupReference
)

// Node is a single element of the compiled matcher tree. Only the fields
// relevant to Kind are populated; the zero value of the others is ignored.
type Node struct {
	Kind Kind

	// KindSingleChar
	Char rune

	// KindCharClass
	Class    []rune
	Negated  bool

	// KindSequence
	Children []*Node

	// KindMultiple
	Child  *Node
	Min    int
	Max    *int // nil means unbounded
	Follow *Node

	// KindGroup
	Alternatives []*Node
	GroupIndex   int

	// KindGroupReference
	RefIndex int
}

// NewSingleChar returns a Node matching exactly c.
func NewSingleChar(c rune) *Node { return &Node{Kind: KindSingleChar, Char: c} }

// NewStart returns a zero-width start-of-text anchor.
func NewStart() *Node { return &Node{Kind: KindStart} }

// NewEnd returns a zero-width end-of-text anchor.
func NewEnd() *Node { return &Node{Kind: KindEnd} }

// NewWildcard returns a Node matching any single character.
func NewWildcard() *Node { return &Node{Kind: KindWildcard} }

// NewCharClass returns a Node matching any rune in class (or, if negated,
// any rune not in class).
func NewCharClass(class []rune, negated bool) *Node {
	return &Node{Kind: KindCharClass, Class: class, Negated: negated}
}

// NewGroup returns a capturing group trying each alternative in order.
func NewGroup(alternatives []*Node, groupIdx int) *Node {
	return &Node{Kind: KindGroup, Alternatives: alternatives, GroupIndex: groupIdx}
}

// NewGroupReference returns a back-reference to a previously captured group.
func NewGroupReference(groupIdx int) *Node {
	return &Node{Kind: KindGroupReference, RefIndex: groupIdx}
}

// NewOneOrMore returns child+ (min=1, unbounded max).
func NewOneOrMore(child *Node, follow *Node) *Node {
	return &Node{Kind: KindMultiple, Child: child, Min: 1, Max: nil, Follow: follow}
}

// NewZeroOrMore returns child* (min=0, unbounded max).
func NewZeroOrMore(child *Node, follow *Node) *Node {
	return &Node{Kind: KindMultiple, Child: child, Min: 0, Max: nil, Follow: follow}
}

// NewZeroOrOne returns child? (min=0, max=1).
func NewZeroOrOne(child *Node) *Node {
	one := 1
	return &Node{Kind: KindMultiple, Child: child, Min: 0, Max: &one}
}

// NewExactly returns child{n} (min=max=n).
func NewExactly(child *Node, n int) *Node {
	m := n
	return &Node{Kind: KindMultiple, Child: child, Min: n, Max: &m}
}

// NewSequence builds a Sequence node from consecutive atoms, wiring each
// Multiple's Follow to its next sibling in source order and folding
// adjacent Multiples over an identical child into a single Multiple with
// summed bounds (a Multiple followed by an atom equal to its child is
// folded the same way, with the atom counted as one more repetition). The
// merged form is not always equivalent to the unmerged one: Follow makes a
// Multiple stop early, so c, a+, a, t matches "caaat" in "caaats" only
// after a+ and a are folded into one Multiple.
func NewSequence(nodes []*Node) *Node {
	var merged []*Node
	var pending *Node

	for _, n := range nodes {
		if pending != nil && isMergeableWith(pending, n) {
			pending = mergeWith(pending, n)
			continue
		}
		if pending != nil {
			if canHaveFollow(pending) {
				merged = append(merged, setFollow(pending, n))
			} else {
				merged = append(merged, pending)
			}
		}
		pending = n
	}
	if pending != nil {
		merged = append(merged, pending)
	}

	if len(merged) == 1 {
		return merged[0]
	}
	return &Node{Kind: KindSequence, Children: merged}
}

func isMergeableWith(a, b *Node) bool {
	if a.Kind != KindMultiple {
		return false
	}
	if b.Kind == KindMultiple {
		return nodesEqual(a.Child, b.Child)
	}
	return nodesEqual(a.Child, b)
}

func mergeWith(a, b *Node) *Node {
	if b.Kind == KindMultiple {
		return &Node{
			Kind:  KindMultiple,
			Child: a.Child,
			Min:   a.Min + b.Min,
			Max:   addBound(a.Max, b.Max),
		}
	}
	return &Node{
		Kind:  KindMultiple,
		Child: a.Child,
		Min:   a.Min + 1,
		Max:   addBoundConst(a.Max, 1),
	}
}

func addBound(a, b *int) *int {
	if a == nil || b == nil {
		return nil
	}
	v := *a + *b
	return &v
}

func addBoundConst(a *int, k int) *int {
	if a == nil {
		return nil
	}
	v := *a + k
	return &v
}

// canHaveFollow reports whether n's last alternative (for a Group, the last
// alternative itself, not its trailing atom if it is a Sequence) is eligible
// to carry a Follow lookahead.
func canHaveFollow(n *Node) bool {
	switch n.Kind {
	case KindMultiple:
		return true
	case KindGroup:
		if len(n.Alternatives) == 0 {
			return false
		}
		last := n.Alternatives[len(n.Alternatives)-1]
		return canHaveFollow(last)
	default:
		return false
	}
}

func setFollow(n, follow *Node) *Node {
	switch n.Kind {
	case KindMultiple:
		clone := *n
		clone.Follow = follow
		return &clone
	case KindGroup:
		newAlts := make([]*Node, len(n.Alternatives))
		copy(newAlts, n.Alternatives)
		last := newAlts[len(newAlts)-1]
		newAlts[len(newAlts)-1] = setFollow(last, follow)
		clone := *n
		clone.Alternatives = newAlts
		return &clone
	default:
		panic("matcher: setFollow called on a node that cannot carry a follow")
	}
}

func nodesEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindSingleChar:
		return a.Char == b.Char
	case KindStart, KindEnd, KindWildcard:
		return true
	case KindCharClass:
		if a.Negated != b.Negated || len(a.Class) != len(b.Class) {
			return false
		}
		for i := range a.Class {
			if a.Class[i] != b.Class[i] {
				return false
			}
		}
		return true
	case KindSequence:
		if len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !nodesEqual(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	case KindMultiple:
		return a.Min == b.Min && intPtrEqual(a.Max, b.Max) && nodesEqual(a.Child, b.Child)
	case KindGroup:
		if a.GroupIndex != b.GroupIndex || len(a.Alternatives) != len(b.Alternatives) {
			return false
		}
		for i := range a.Alternatives {
			if !nodesEqual(a.Alternatives[i], b.Alternatives[i]) {
				return false
			}
		}
		return true
	case KindGroupReference:
		return a.RefIndex == b.RefIndex
	default:
		return false
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
