package application

import (
	"strconv"

	"roman-numeral-service/numeral/domain"
)

// Outcome é o resultado de uma conversão completa.
//
// Exatamente um dos três estados vale: Err != nil (falha interna),
// Validation.Rejection != "" (rejeição) ou sucesso (Output preenchido).
type Outcome struct {
	Validation domain.Validation
	Output     string
	Err        error
}

func (o Outcome) Converted() bool { return o.Err == nil && o.Validation.OK() }

// Input é o valor ecoado na resposta: o inteiro canônico em caso de sucesso
// ("042" -> "42"), ou a entrada bruta em caso de rejeição.
func (o Outcome) Input() string {
	if o.Validation.OK() {
		return strconv.Itoa(o.Validation.Value)
	}
	return o.Validation.Raw
}

// Label é o rótulo de resultado usado em estatísticas e logs.
func (o Outcome) Label() string {
	switch {
	case o.Err != nil:
		return domain.OutcomeInternalError
	case !o.Validation.OK():
		return o.Validation.Rejection.String()
	default:
		return domain.OutcomeConverted
	}
}

// Service concentra a regra de aplicação da conversão.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna um Outcome.
type Service struct {
	Validator Validator
	Converter Converter
}

func (s Service) Convert(values []string) Outcome {
	val := s.Validator.Validate(values)
	if !val.OK() {
		return Outcome{Validation: val}
	}

	conv := s.Converter
	if conv == nil {
		conv = TableConverter{}
	}
	out, err := conv.ToRoman(val.Value)
	if err != nil {
		return Outcome{Validation: val, Err: err}
	}
	return Outcome{Validation: val, Output: out}
}
