package lexer

type TokenType int

const (
	TokenEOF     TokenType = iota
	TokenWord              // maximal run of printable, non-space bytes
	TokenComment           // '*' in column 1; Text holds the whole line
)

type Token struct {
	Type TokenType
	Text string
	Col  int
}

// Lexer splits one MPS line into words. MPS is line oriented, so a Lexer
// never sees more than a single line and carries no line counter.
type Lexer struct {
	input string
	pos   int
}

func New(line string) *Lexer {
	return &Lexer{input: line}
}

func (l *Lexer) Next() Token {
	if l.pos == 0 && !l.eof() && l.cur() == '*' {
		l.pos = len(l.input)
		return Token{Type: TokenComment, Text: l.input, Col: 1}
	}
	l.skipSpace()
	if l.eof() {
		return l.mk(TokenEOF, "")
	}
	start := l.pos
	for !l.eof() && isGraph(l.cur()) {
		l.advance()
	}
	return Token{Type: TokenWord, Text: l.input[start:l.pos], Col: start + 1}
}

// Rest returns the unread part of the line, starting right after the last
// token handed out by Next.
func (l *Lexer) Rest() string {
	return l.input[l.pos:]
}

func (l *Lexer) mk(t TokenType, s string) Token {
	return Token{Type: t, Text: s, Col: l.pos + 1}
}

func (l *Lexer) skipSpace() {
	for !l.eof() && !isGraph(l.cur()) {
		l.advance()
	}
}

func (l *Lexer) cur() byte { return l.input[l.pos] }
func (l *Lexer) eof() bool { return l.pos >= len(l.input) }
func (l *Lexer) advance()  { l.pos++ }

// isGraph reports printable, non-space bytes. Bytes of multi-byte UTF-8
// sequences are all >= 0x80 and therefore part of words.
func isGraph(b byte) bool {
	return b > ' ' && b != 0x7f
}
