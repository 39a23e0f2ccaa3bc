package jast

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errBadLiteral = errors.New("malformed literal")

// Unquote decodes a string or char literal spelled raw, quotes included.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 {
		return "", errBadLiteral
	}
	q := raw[0]
	if (q != '"' && q != '\'') || raw[len(raw)-1] != q {
		return "", errBadLiteral
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		i++
		if i >= len(body) {
			return "", errBadLiteral
		}
		switch c = body[i]; c {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 's':
			b.WriteByte(' ')
		case '"', '\'', '\\':
			b.WriteByte(c)
		case 'u':
			for i < len(body) && body[i] == 'u' {
				i++
			}
			if i+4 > len(body) {
				return "", errBadLiteral
			}
			v, err := strconv.ParseUint(body[i:i+4], 16, 16)
			if err != nil {
				return "", errBadLiteral
			}
			b.WriteRune(rune(v))
			i += 4
			continue
		default:
			if c < '0' || c > '7' {
				return "", errBadLiteral
			}
			// octal escape, up to \377
			j := i
			for j < len(body) && j-i < 3 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
			if j-i == 3 && body[i] > '3' {
				j--
			}
			v, _ := strconv.ParseUint(body[i:j], 8, 8)
			b.WriteRune(rune(v))
			i = j
			continue
		}
		i++
	}
	return b.String(), nil
}

// CharValue decodes a char literal into its single UTF-16 code unit.
func CharValue(raw string) (rune, bool) {
	s, err := Unquote(raw)
	if err != nil || utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, r <= 0xFFFF
}
