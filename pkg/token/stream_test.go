package token

import "testing"

func TestStreamAppendsEOF(t *testing.T) {
	s := NewStream([]Token{
		{Kind: Identifier, Literal: "x", Pos: Position{Line: 1, Column: 1}},
	})
	if got := s.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	if tok := s.Next(); tok.Kind != Identifier || tok.Literal != "x" {
		t.Fatalf("unexpected first token %#v", tok)
	}
	for i := 0; i < 3; i++ {
		if tok := s.Next(); tok.Kind != EOF {
			t.Fatalf("drained stream returned %s, want EOF", tok)
		}
	}
}

func TestStreamKeepsExplicitEOF(t *testing.T) {
	s := NewStream([]Token{{Kind: EOF}})
	if got := s.Len(); got != 1 {
		t.Fatalf("Len = %d, want 1", got)
	}
}

func TestLookupIdent(t *testing.T) {
	cases := map[string]Kind{
		"let":      Let,
		"fn":       Fn,
		"loop":     Loop,
		"continue": Continue,
		"true":     True,
		"letter":   Identifier,
		"empty?":   Identifier,
	}
	for word, want := range cases {
		if got := LookupIdent(word); got != want {
			t.Fatalf("LookupIdent(%q) = %s, want %s", word, got, want)
		}
	}
}

func TestTokenString(t *testing.T) {
	if got := (Token{Kind: Number, Number: 2.5}).String(); got != "number 2.5" {
		t.Fatalf("String() = %q", got)
	}
	if got := (Token{Kind: RightBrace}).String(); got != "'}'" {
		t.Fatalf("String() = %q", got)
	}
}
