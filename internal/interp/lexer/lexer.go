package lexer

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/Mahdi-s/mini-pascal-interpreter/internal/interp/token"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Error is a fatal lexical error: a character that matches no token rule, or
// a comment/string left unterminated at end of input.
type Error struct {
	Lexeme string
	Line   int
	Column int
	Msg    string
}

func (e *Error) Error() string {
	if e.Lexeme != "" {
		return fmt.Sprintf("%d:%d: lexical error: %s %q", e.Line, e.Column, e.Msg, e.Lexeme)
	}
	return fmt.Sprintf("%d:%d: lexical error: %s", e.Line, e.Column, e.Msg)
}

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances the lexer's position and updates the current character.
// It handles EOF and tracks line/column numbers.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // end of input
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else if l.ch != 0 {
		l.column++
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken returns the next token from the input. The cursor advances
// monotonically; after the end of input it keeps returning EOF tokens.
func (l *Lexer) NextToken() (token.Token, error) {
	for {
		l.skipWhitespace()
		if l.ch != '{' {
			break
		}
		if err := l.skipComment(); err != nil {
			return token.Token{}, err
		}
	}

	startLine := l.line
	startCol := l.column

	switch l.ch {
	case 0:
		return l.emit(token.TokenEOF, "", startLine, startCol), nil
	case '\'':
		return l.readString(startLine, startCol)
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(token.TokenAssign, ":=", startLine, startCol), nil
		}
		l.readChar()
		return l.emit(token.TokenColon, ":", startLine, startCol), nil
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(token.TokenLessEqual, "<=", startLine, startCol), nil
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.emit(token.TokenNotEqual, "<>", startLine, startCol), nil
		}
		l.readChar()
		return l.emit(token.TokenLess, "<", startLine, startCol), nil
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.emit(token.TokenGreaterEqual, ">=", startLine, startCol), nil
		}
		l.readChar()
		return l.emit(token.TokenGreater, ">", startLine, startCol), nil
	case '+':
		l.readChar()
		return l.emit(token.TokenPlus, "+", startLine, startCol), nil
	case '-':
		l.readChar()
		return l.emit(token.TokenMinus, "-", startLine, startCol), nil
	case '*':
		l.readChar()
		return l.emit(token.TokenMul, "*", startLine, startCol), nil
	case '/':
		l.readChar()
		return l.emit(token.TokenFloatDiv, "/", startLine, startCol), nil
	case '(':
		l.readChar()
		return l.emit(token.TokenLParen, "(", startLine, startCol), nil
	case ')':
		l.readChar()
		return l.emit(token.TokenRParen, ")", startLine, startCol), nil
	case ';':
		l.readChar()
		return l.emit(token.TokenSemi, ";", startLine, startCol), nil
	case '.':
		l.readChar()
		return l.emit(token.TokenDot, ".", startLine, startCol), nil
	case ',':
		l.readChar()
		return l.emit(token.TokenComma, ",", startLine, startCol), nil
	case '=':
		l.readChar()
		return l.emit(token.TokenEqual, "=", startLine, startCol), nil
	case '[':
		l.readChar()
		return l.emit(token.TokenLBrack, "[", startLine, startCol), nil
	case ']':
		l.readChar()
		return l.emit(token.TokenRBrack, "]", startLine, startCol), nil
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			tokType, canonical := token.LookupIdent(ident)
			return l.emit(tokType, canonical, startLine, startCol), nil
		}
		if isDigit(l.ch) {
			return l.readNumber(startLine, startCol), nil
		}
		lexeme := string(l.ch)
		l.readChar()
		return token.Token{}, &Error{
			Lexeme: lexeme,
			Line:   startLine,
			Column: startCol,
			Msg:    "unexpected character",
		}
	}
}

func (l *Lexer) emit(tokType token.TokenType, literal string, line, col int) token.Token {
	tok := token.Token{Type: tokType, Literal: literal, Line: line, Column: col}
	T().Debugf("token %s", tok)
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment consumes a '{ ... }' comment including the closing brace.
func (l *Lexer) skipComment() error {
	startLine := l.line
	startCol := l.column
	l.readChar() // consume '{'
	for l.ch != '}' {
		if l.ch == 0 {
			return &Error{Line: startLine, Column: startCol, Msg: "unterminated comment"}
		}
		l.readChar()
	}
	l.readChar() // consume '}'
	return nil
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes an integer literal, extended to a real literal when a
// '.' is directly followed by a digit. A '.' followed by anything else is
// left in place so that the '..' range marker lexes as two DOT tokens.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.emit(token.TokenRealConst, l.input[start:l.position], startLine, startCol)
	}

	return l.emit(token.TokenIntegerConst, l.input[start:l.position], startLine, startCol)
}

// readString consumes a '...' string literal, characters taken verbatim up
// to the closing quote.
func (l *Lexer) readString(startLine, startCol int) (token.Token, error) {
	l.readChar() // consume opening quote
	start := l.position

	for l.ch != '\'' {
		if l.ch == 0 {
			return token.Token{}, &Error{Line: startLine, Column: startCol, Msg: "unterminated string literal"}
		}
		l.readChar()
	}

	lit := l.input[start:l.position]
	l.readChar() // consume closing quote
	return l.emit(token.TokenStringConst, lit, startLine, startCol), nil
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
