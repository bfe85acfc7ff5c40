// Package numeral é o adapter HTTP (net/http) do conversor de numerais romanos.
//
// Visão geral (camadas):
//
//   - domain: tipos de rejeição, faixa válida e contrato de estatísticas (sem net/http)
//   - application: validador, conversor e o caso de uso Service.Convert (sem net/http)
//   - infra: implementações de StatsStore (memória, Redis, Prometheus)
//   - numeral (este pacote): handler, envelope JSON, request id e roteamento
//
// Fluxo de GET /romannumeral?query=N:
//
//  1. Lê todos os valores de "query" (lista = InvalidParameterType)
//  2. Chama application.Service para obter o Outcome
//  3. Traduz para 200 / 400 / 500 com o envelope JSON
//  4. Registra um domain.ConversionEvent no StatsStore (best-effort)
package numeral
