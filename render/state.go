package render

import (
	"unicode/utf8"

	"birch/cst"
)

// state carries the emission cursor: the token list plus the line, column
// and byte offset the next token will start at. Column counts runes.
type state struct {
	tree    *cst.Tree
	cfg     cst.DocConfig
	tracker Tracker

	tokens  []string
	line    int // 1-based
	column  int // 0-based
	offset  int // bytes
	indents []string
}

func newState(tree *cst.Tree, cfg cst.DocConfig, tracker Tracker) *state {
	return &state{
		tree:    tree,
		cfg:     cfg.WithDefaults(),
		tracker: tracker,
		tokens:  make([]string, 0, tree.Len()),
		line:    1,
	}
}

// add appends a token and advances the cursor across it, counting embedded
// "\n", "\r\n" and "\r" terminators.
func (s *state) add(tok string) {
	s.tokens = append(s.tokens, tok)
	s.offset += len(tok)
	rest := tok
	for {
		idx, size := nextNewline(rest)
		if idx < 0 {
			s.column += utf8.RuneCountInString(rest)
			return
		}
		s.line++
		s.column = 0
		rest = rest[idx+size:]
	}
}

// popLast drops the most recent token without rewinding the cursor. The
// trailing-newline suppression counts on this: the popped newline stays
// inside every recorded span.
func (s *state) popLast() {
	if len(s.tokens) > 0 {
		s.tokens = s.tokens[:len(s.tokens)-1]
	}
}

func nextNewline(s string) (idx, size int) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return i, 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return i, 2
			}
			return i, 1
		}
	}
	return -1, 0
}

func (s *state) pushIndent(segment string) {
	s.indents = append(s.indents, segment)
}

func (s *state) popIndent() {
	s.indents = s.indents[:len(s.indents)-1]
}

// addIndent emits every indentation segment on the stack.
func (s *state) addIndent() {
	for _, segment := range s.indents {
		s.add(segment)
	}
}

type mark struct {
	line, column, offset int
}

func (s *state) mark() mark {
	return mark{line: s.line, column: s.column, offset: s.offset}
}

func (s *state) spanFrom(m mark) Span {
	return Span{
		Range: cst.CodeRange{
			Start: cst.Position{Line: m.line, Column: m.column},
			End:   cst.Position{Line: s.line, Column: s.column},
		},
		Start: m.offset,
		End:   s.offset,
	}
}

// finish records the whitespace-inclusive window for a node that just
// emitted, unless something (a syntactic record) already claimed it.
func (s *state) finish(id cst.NodeID, m mark) {
	if s.tracker == nil {
		return
	}
	if _, ok := s.tracker.Span(id); ok {
		return
	}
	s.tracker.RecordSpan(id, s.spanFrom(m))
}

// endSyntactic closes the trimmed record for a statement-shaped node. When
// startFrom or endFrom name child nodes, the corresponding edge is lifted
// from the child's recorded span so that blocks end where their last
// statement ends, not where its trailing whitespace does.
func (s *state) endSyntactic(id cst.NodeID, m mark, startFrom, endFrom cst.NodeID) {
	if s.tracker == nil {
		return
	}
	sp := s.spanFrom(m)
	if startFrom.IsValid() {
		if child, ok := s.tracker.Span(startFrom); ok {
			sp.Range.Start = child.Range.Start
			sp.Start = child.Start
		}
	}
	if endFrom.IsValid() {
		if child, ok := s.tracker.Span(endFrom); ok {
			sp.Range.End = child.Range.End
			sp.End = child.End
		}
	}
	s.tracker.RecordSyntacticSpan(id, sp)
}
