// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - MemoryStatsStore: contadores em memória, expostos em /stats
//   - RedisStatsStore: contadores compartilhados entre réplicas (go-redis)
//   - PromStatsStore: contador e histograma Prometheus expostos em /metrics
//   - Fanout: replica um evento para vários StatsStore
package infra
