package application

import (
	"math"

	"roman-numeral-service/numeral/domain"
)

// Validator classifica a entrada bruta em inteiro válido ou rejeição.
//
// As regras são avaliadas em ordem fixa e a primeira que casar vence, para que
// "abc" reporte InvalidNumber e nunca OutOfRange.
type Validator struct {
	// Strict desliga o parse permissivo de prefixo ("42abc" passa a ser InvalidNumber).
	Strict bool
}

// Validate recebe todos os valores do parâmetro (url.Values[key]).
// Mais de um valor equivale a "não é uma string escalar".
func (v Validator) Validate(values []string) domain.Validation {
	if len(values) == 0 || (len(values) == 1 && values[0] == "") {
		return domain.Reject("", domain.MissingParameter)
	}
	if len(values) > 1 {
		return domain.Reject("", domain.InvalidParameterType)
	}
	return v.ValidateString(values[0])
}

// ValidateString valida uma entrada escalar.
func (v Validator) ValidateString(raw string) domain.Validation {
	if raw == "" {
		return domain.Reject("", domain.MissingParameter)
	}

	var num float64
	if v.Strict {
		num = parseWholeFloat(raw)
	} else {
		num = parseLeadingFloat(raw)
	}

	if math.IsNaN(num) {
		return domain.Reject(raw, domain.InvalidNumber)
	}
	if math.IsInf(num, 0) || num != math.Trunc(num) {
		return domain.Reject(raw, domain.DecimalNumber)
	}
	if num < domain.MinValue || num > domain.MaxValue {
		return domain.Reject(raw, domain.OutOfRange)
	}
	return domain.Accept(raw, int(num))
}
