package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokKeyword
	tokInt
	tokFloat
	tokString
	tokSymbol // ( ) , * ;
	tokOp     // = != <> > < >= <=
)

type token struct {
	kind tokenKind
	text string // keywords upper-cased; strings unescaped
	pos  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString:
		return strconv.Quote(t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

var keywords = map[string]struct{}{
	"CREATE": {}, "TABLE": {}, "INDEX": {}, "ON": {},
	"INSERT": {}, "INTO": {}, "VALUES": {},
	"SELECT": {}, "FROM": {}, "WHERE": {},
	"UPDATE": {}, "SET": {}, "DELETE": {},
	"NULL": {},
}

// lex splits sql into tokens. String literals may use single or double
// quotes and backslash escapes (\n \t \\ \' \").
func lex(sql string) ([]token, error) {
	var toks []token
	rs := []rune(sql)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '(' || r == ')' || r == ',' || r == '*' || r == ';':
			toks = append(toks, token{kind: tokSymbol, text: string(r), pos: i})
			i++

		case r == '=':
			toks = append(toks, token{kind: tokOp, text: "=", pos: i})
			i++

		case r == '!' || r == '<' || r == '>':
			op := string(r)
			if i+1 < len(rs) && (rs[i+1] == '=' || (r == '<' && rs[i+1] == '>')) {
				op += string(rs[i+1])
			}
			if op == "!" {
				return nil, fmt.Errorf("unexpected character '!' at %d", i)
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i += len([]rune(op))

		case r == '\'' || r == '"':
			s, n, err := lexString(rs[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: s, pos: i})
			i += n

		case unicode.IsDigit(r) || (r == '-' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			start := i
			i++
			isFloat := false
			for i < len(rs) && (unicode.IsDigit(rs[i]) || (rs[i] == '.' && !isFloat)) {
				if rs[i] == '.' {
					isFloat = true
				}
				i++
			}
			kind := tokInt
			if isFloat {
				kind = tokFloat
			}
			toks = append(toks, token{kind: kind, text: string(rs[start:i]), pos: start})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_') {
				i++
			}
			word := string(rs[start:i])
			if _, ok := keywords[strings.ToUpper(word)]; ok {
				toks = append(toks, token{kind: tokKeyword, text: strings.ToUpper(word), pos: start})
			} else {
				toks = append(toks, token{kind: tokIdent, text: word, pos: start})
			}

		default:
			return nil, fmt.Errorf("unexpected character '%c' at %d", r, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(rs)}), nil
}

// lexString reads a quoted literal starting at rs[0] and returns its value and
// the number of runes consumed.
func lexString(rs []rune) (string, int, error) {
	quote := rs[0]
	var b strings.Builder
	for i := 1; i < len(rs); i++ {
		r := rs[i]
		if r == quote {
			return b.String(), i + 1, nil
		}
		if r == '\\' && i+1 < len(rs) {
			i++
			switch rs[i] {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(rs[i])
			}
			continue
		}
		b.WriteRune(r)
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}
