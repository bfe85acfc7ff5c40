// Package domain define os tipos e contratos da conversão para numerais romanos.
//
// Este pacote não depende de net/http nem de implementações concretas.
// Rejeições de validação são valores (RejectionKind), não erros: o adapter HTTP
// decide status e mensagem a partir delas.
package domain
