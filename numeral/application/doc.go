// Package application contém os casos de uso da conversão: validação da entrada
// e conversão do inteiro para numeral romano.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Convert(values) retorna um Outcome (sucesso, rejeição ou falha interna).
package application
