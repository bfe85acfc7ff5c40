package application

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Gramática de literal decimal aceita: sinal opcional, Infinity, ou dígitos com
// fração e expoente opcionais. Hex, octal e separadores não são aceitos.
const decimalLiteral = `[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`

var (
	leadingDecimal = regexp.MustCompile(`^` + decimalLiteral)
	wholeDecimal   = regexp.MustCompile(`^` + decimalLiteral + `$`)
)

// parseLeadingFloat lê o maior prefixo numérico de s, ignorando espaços à esquerda.
// "42abc" -> 42, "  7" -> 7, "abc" -> NaN, "1e3x" -> 1000.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, isSpace)
	return parseLiteral(leadingDecimal.FindString(s))
}

// parseWholeFloat exige que a string inteira (sem espaços nas pontas) seja um literal.
func parseWholeFloat(s string) float64 {
	s = strings.TrimFunc(s, isSpace)
	if !wholeDecimal.MatchString(s) {
		return math.NaN()
	}
	return parseLiteral(s)
}

func parseLiteral(lit string) float64 {
	if lit == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// overflow/underflow: ParseFloat já devolve ±Inf ou 0, que é o que queremos
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}

// isSpace segue o conjunto de espaços do parseFloat do JavaScript: Zs, os
// terminadores de linha e o BOM. NEL (U+0085) não entra.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
