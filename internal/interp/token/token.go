package token

import (
	"fmt"
	"strings"
)

type TokenType string

const (
	// Single character tokens
	TokenPlus     TokenType = "PLUS"          // +
	TokenMinus    TokenType = "MINUS"         // -
	TokenMul      TokenType = "MUL"           // *
	TokenFloatDiv TokenType = "FLOAT_DIV"     // /
	TokenLParen   TokenType = "LPAREN"        // (
	TokenRParen   TokenType = "RPAREN"        // )
	TokenSemi     TokenType = "SEMI"          // ;
	TokenDot      TokenType = "DOT"           // .
	TokenColon    TokenType = "COLON"         // :
	TokenComma    TokenType = "COMMA"         // ,
	TokenLess     TokenType = "LESS"          // <
	TokenGreater  TokenType = "GREATER"       // >
	TokenEqual    TokenType = "EQUAL"         // =
	TokenLBrack   TokenType = "LBRACK"        // [
	TokenRBrack   TokenType = "RBRACK"        // ]

	// Two character tokens
	TokenAssign       TokenType = "ASSIGN"       // :=
	TokenLessEqual    TokenType = "LESSEQUAL"    // <=
	TokenGreaterEqual TokenType = "GREATEREQUAL" // >=
	TokenNotEqual     TokenType = "NOTEQUAL"     // <>

	// Keywords (matched case-insensitively, canonical uppercase literal)
	TokenProgram    TokenType = "PROGRAM"
	TokenInteger    TokenType = "INTEGER"
	TokenReal       TokenType = "REAL"
	TokenString     TokenType = "STRING"
	TokenChar       TokenType = "CHAR"
	TokenIntegerDiv TokenType = "INTEGER_DIV" // DIV
	TokenVar        TokenType = "VAR"
	TokenProcedure  TokenType = "PROCEDURE"
	TokenBegin      TokenType = "BEGIN"
	TokenAnd        TokenType = "AND"
	TokenArray      TokenType = "ARRAY"
	TokenMod        TokenType = "MOD"
	TokenDo         TokenType = "DO"
	TokenElse       TokenType = "ELSE"
	TokenIf         TokenType = "IF"
	TokenNot        TokenType = "NOT"
	TokenOf         TokenType = "OF"
	TokenOr         TokenType = "OR"
	TokenOrd        TokenType = "ORD"
	TokenRead       TokenType = "READ"
	TokenReadln     TokenType = "READLN"
	TokenThen       TokenType = "THEN"
	TokenWhile      TokenType = "WHILE"
	TokenWrite      TokenType = "WRITE"
	TokenWriteln    TokenType = "WRITELN"
	TokenEnd        TokenType = "END"

	// Literals & Identifiers
	TokenIdent        TokenType = "ID"
	TokenIntegerConst TokenType = "INTEGER_CONST"
	TokenRealConst    TokenType = "REAL_CONST"
	TokenStringConst  TokenType = "STRING_CONST"

	// Special
	TokenEOF TokenType = "EOF"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %d:%d", t.Type, t.Literal, t.Line, t.Column)
}

// keywords maps the uppercase spelling of each reserved word to its token
// type. MOD, NOT, ORD and OF are reserved even though not every production
// consumes them.
var keywords = map[string]TokenType{
	"PROGRAM":   TokenProgram,
	"INTEGER":   TokenInteger,
	"REAL":      TokenReal,
	"STRING":    TokenString,
	"CHAR":      TokenChar,
	"DIV":       TokenIntegerDiv,
	"VAR":       TokenVar,
	"PROCEDURE": TokenProcedure,
	"BEGIN":     TokenBegin,
	"AND":       TokenAnd,
	"ARRAY":     TokenArray,
	"MOD":       TokenMod,
	"DO":        TokenDo,
	"ELSE":      TokenElse,
	"IF":        TokenIf,
	"NOT":       TokenNot,
	"OF":        TokenOf,
	"OR":        TokenOr,
	"ORD":       TokenOrd,
	"READ":      TokenRead,
	"READLN":    TokenReadln,
	"THEN":      TokenThen,
	"WHILE":     TokenWhile,
	"WRITE":     TokenWrite,
	"WRITELN":   TokenWriteln,
	"END":       TokenEnd,
}

// LookupIdent decides whether an identifier run is a reserved word. Reserved
// words match case-insensitively; the returned canonical spelling is the
// uppercase form for keywords and the original spelling for identifiers.
func LookupIdent(ident string) (TokenType, string) {
	upper := strings.ToUpper(ident)
	if tokType, ok := keywords[upper]; ok {
		return tokType, upper
	}
	return TokenIdent, ident
}
