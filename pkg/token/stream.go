package token

import "github.com/edwingeng/deque"

// Stream is a single-pass, EOF-terminated token queue.
type Stream struct {
	queue deque.Deque
	last  Token
}

// NewStream queues tokens in order. A trailing EOF is appended when missing so the
// consumer always observes an explicit end marker.
func NewStream(tokens []Token) *Stream {
	s := &Stream{queue: deque.NewDeque()}
	for _, tok := range tokens {
		s.Push(tok)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		var pos Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		s.Push(Token{Kind: EOF, Pos: pos})
	}
	return s
}

// Push appends a token to the end of the stream.
func (s *Stream) Push(tok Token) {
	s.queue.PushBack(tok)
}

// Next removes and returns the front token. Once drained it keeps returning the
// last EOF token.
func (s *Stream) Next() Token {
	if s.queue.Len() == 0 {
		if s.last.Kind != EOF {
			return Token{Kind: EOF, Pos: s.last.Pos}
		}
		return s.last
	}
	tok := s.queue.PopFront().(Token)
	s.last = tok
	return tok
}

// Len reports how many tokens are still queued.
func (s *Stream) Len() int {
	return s.queue.Len()
}
