package application

import (
	"fmt"
	"strings"

	"roman-numeral-service/numeral/domain"
)

type symbol struct {
	value int
	glyph string
}

// Do maior para o menor, incluindo os seis pares subtrativos.
// A ordem é obrigatória para o algoritmo guloso produzir a forma mínima.
var table = [...]symbol{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// maior saída possível: MMMDCCCLXXXVIII (3888)
const maxNumeralLen = 15

// Converter transforma um inteiro validado em numeral romano.
type Converter interface {
	ToRoman(n int) (string, error)
}

// TableConverter é o conversor guloso padrão. Não tem estado; o valor zero é utilizável.
type TableConverter struct{}

func (TableConverter) ToRoman(n int) (string, error) { return ToRoman(n) }

// ToRoman converte n (1..3999) para a forma romana padrão com notação subtrativa.
// Fora da faixa retorna domain.ErrOutOfRange em vez de uma string vazia/truncada.
func ToRoman(n int) (string, error) {
	if !domain.InRange(n) {
		return "", fmt.Errorf("to roman %d: %w", n, domain.ErrOutOfRange)
	}

	var b strings.Builder
	b.Grow(maxNumeralLen)

	remaining := n
	for _, s := range table {
		count := remaining / s.value
		for i := 0; i < count; i++ {
			b.WriteString(s.glyph)
		}
		remaining -= s.value * count
		if remaining == 0 {
			break
		}
	}
	return b.String(), nil
}
