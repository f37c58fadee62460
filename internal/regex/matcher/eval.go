package matcher

// Matches reports whether text contains a match for the compiled tree
// anywhere within it.
func (n *Node) Matches(text string) bool {
	return n.FindFirstMatch(text) != nil
}

// FindFirstMatch returns the leftmost match in text, or nil if none exists.
// Offsets are measured in Unicode code points throughout.
func (n *Node) FindFirstMatch(text string) *Match {
	runes := []rune(text)
	for offset := 0; offset <= len(runes); offset++ {
		if m := n.check(runes, offset, map[int]string{}); m != nil {
			return m
		}
	}
	return nil
}

// FindAllMatches returns every non-overlapping match in text, scanning
// left to right. An empty match advances the search position by one
// character so that find_all_matches always makes progress.
func (n *Node) FindAllMatches(text string) []Match {
	runes := []rune(text)
	var out []Match
	offset := 0
	for offset <= len(runes) {
		m := n.findFrom(runes, offset)
		if m == nil {
			break
		}
		out = append(out, *m)
		end := m.Offset + len([]rune(m.MatchedText))
		if end == m.Offset {
			end++
		}
		offset = end
	}
	return out
}

func (n *Node) findFrom(runes []rune, start int) *Match {
	for offset := start; offset <= len(runes); offset++ {
		if m := n.check(runes, offset, map[int]string{}); m != nil {
			return m
		}
	}
	return nil
}

// check is the backtracking evaluator. It threads the current offset and a
// read-only capture mapping down through the recursion and returns the
// Match (with its own sub-capture set) on success, or nil on failure.
func (n *Node) check(text []rune, offset int, groups map[int]string) *Match {
	switch n.Kind {
	case KindSingleChar:
		return n.checkSingleChar(text, offset)
	case KindStart:
		return n.checkStart(offset)
	case KindEnd:
		return n.checkEnd(text, offset)
	case KindWildcard:
		return n.checkWildcard(text, offset)
	case KindCharClass:
		return n.checkCharClass(text, offset)
	case KindSequence:
		return n.checkSequence(text, offset, groups)
	case KindMultiple:
		return n.checkMultiple(text, offset, groups)
	case KindGroup:
		return n.checkGroup(text, offset, groups)
	case KindGroupReference:
		return n.checkGroupReference(text, offset, groups)
	default:
		panic("matcher: unknown node kind")
	}
}

func (n *Node) checkSingleChar(text []rune, offset int) *Match {
	if offset >= len(text) {
		return nil
	}
	if text[offset] != n.Char {
		return nil
	}
	m := newMatch(string(n.Char), offset)
	return &m
}

func (n *Node) checkStart(offset int) *Match {
	if offset != 0 {
		return nil
	}
	m := newMatch("", offset)
	return &m
}

func (n *Node) checkEnd(text []rune, offset int) *Match {
	if offset != len(text) {
		return nil
	}
	m := newMatch("", offset)
	return &m
}

func (n *Node) checkWildcard(text []rune, offset int) *Match {
	if offset >= len(text) {
		return nil
	}
	m := newMatch(string(text[offset]), offset)
	return &m
}

func (n *Node) checkCharClass(text []rune, offset int) *Match {
	if offset >= len(text) {
		return nil
	}
	c := text[offset]
	member := false
	for _, cand := range n.Class {
		if cand == c {
			member = true
			break
		}
	}
	if member == n.Negated {
		return nil
	}
	m := newMatch(string(c), offset)
	return &m
}

func (n *Node) checkSequence(text []rune, offset int, groups map[int]string) *Match {
	curOffset := offset
	curGroups := cloneGroups(groups)
	result := newMatch("", offset)

	for _, child := range n.Children {
		m := child.check(text, curOffset, curGroups)
		if m == nil {
			return nil
		}
		result.accumulate(*m)
		curOffset += len([]rune(m.MatchedText))
		updateGroupResults(curGroups, *m)
	}
	return &result
}

func (n *Node) checkMultiple(text []rune, offset int, groups map[int]string) *Match {
	curOffset := offset
	curGroups := cloneGroups(groups)
	result := newMatch("", offset)
	count := 0

	for {
		minReached := count >= n.Min
		maxReached := n.Max != nil && count >= *n.Max

		m := n.Child.check(text, curOffset, curGroups)
		if m == nil {
			if minReached {
				return &result
			}
			return nil
		}

		if minReached && !maxReached && n.Follow != nil && n.Follow.Matches(m.MatchedText) {
			return &result
		}

		result.accumulate(*m)
		curOffset += len([]rune(m.MatchedText))
		updateGroupResults(curGroups, *m)
		count++

		if n.Max != nil && count >= *n.Max {
			return &result
		}
	}
}

func (n *Node) checkGroup(text []rune, offset int, groups map[int]string) *Match {
	for _, alt := range n.Alternatives {
		m := alt.check(text, offset, groups)
		if m == nil {
			continue
		}
		result := newMatch("", offset)
		result.accumulate(*m)
		snapshot := result
		snapshot.SubMatches = cloneMatches(result.SubMatches)
		if result.SubMatches == nil {
			result.SubMatches = make(map[int]Match, 1)
		}
		result.SubMatches[n.GroupIndex] = snapshot
		return &result
	}
	return nil
}

func (n *Node) checkGroupReference(text []rune, offset int, groups map[int]string) *Match {
	captured, ok := groups[n.RefIndex]
	if !ok {
		return nil
	}
	capturedRunes := []rune(captured)
	if offset+len(capturedRunes) > len(text) {
		return nil
	}
	for i, r := range capturedRunes {
		if text[offset+i] != r {
			return nil
		}
	}
	m := newMatch(captured, offset)
	return &m
}
