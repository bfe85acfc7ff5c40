package domain

// RejectionKind classifica por que uma entrada foi recusada.
// O conjunto é fechado; o valor string é o que vai no campo "error" da resposta.
type RejectionKind string

const (
	MissingParameter     RejectionKind = "MissingParameter"
	InvalidParameterType RejectionKind = "InvalidParameterType"
	InvalidNumber        RejectionKind = "InvalidNumber"
	DecimalNumber        RejectionKind = "DecimalNumber"
	OutOfRange           RejectionKind = "OutOfRange"
)

// Os textos são contrato público com o frontend; não alterar.
var messages = map[RejectionKind]string{
	MissingParameter:     "Please provide a number using the query parameter.",
	InvalidParameterType: "Query parameter must be a string.",
	InvalidNumber:        "Invalid input. Please provide a valid number.",
	DecimalNumber:        "Please provide a whole number (no decimals).",
	OutOfRange:           "Number must be between 1 and 3999.",
}

// Message retorna o texto legível associado ao tipo de rejeição.
func (k RejectionKind) Message() string { return messages[k] }

// Valid informa se k pertence ao conjunto conhecido.
func (k RejectionKind) Valid() bool {
	_, ok := messages[k]
	return ok
}

func (k RejectionKind) String() string { return string(k) }

// RejectionKinds lista os tipos na ordem em que o validador os avalia.
func RejectionKinds() []RejectionKind {
	return []RejectionKind{MissingParameter, InvalidParameterType, InvalidNumber, DecimalNumber, OutOfRange}
}
