package domain

import "errors"

// Faixa representável em notação romana padrão (sem vinculum).
const (
	MinValue = 1
	MaxValue = 3999
)

// ErrOutOfRange é retornado pelo conversor quando a pré-condição de faixa é violada.
// Em operação normal o validador impede que isso aconteça.
var ErrOutOfRange = errors.New("value outside 1..3999")

// Validation é o resultado do validador: ou um inteiro válido, ou uma rejeição.
type Validation struct {
	// Raw é a entrada original (vazia quando ausente ou quando veio como lista).
	Raw string
	// Value só é significativo quando Rejection == "".
	Value int
	// Rejection vazio significa sucesso.
	Rejection RejectionKind
}

func (v Validation) OK() bool { return v.Rejection == "" }

func Accept(raw string, value int) Validation {
	return Validation{Raw: raw, Value: value}
}

func Reject(raw string, kind RejectionKind) Validation {
	return Validation{Raw: raw, Rejection: kind}
}

// InRange informa se n pode ser convertido.
func InRange(n int) bool { return n >= MinValue && n <= MaxValue }
