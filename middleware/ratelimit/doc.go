// Package ratelimit fornece middlewares HTTP (net/http) de admissão para o serviço:
// rate limit por cliente e limite de concorrência.
//
// Peças:
//
//   - Store: token bucket por chave (golang.org/x/time/rate) com limpeza de chaves ociosas
//   - pool: semáforo em channel para limitar requisições simultâneas
//   - Middleware / ConcurrencyMiddleware: extraem a chave, decidem e traduzem para status/headers
//
// Fluxo:
//
//  1. Extrai a chave do cliente (header/XFF/IP)
//  2. Consulta o limiter da chave
//  3. Se bloqueado, chama RejectFunc (429 para rate limit, 503 para concorrência)
//  4. Se permitido, chama o próximo handler
//
// O formato do corpo de rejeição é decidido por quem monta o servidor (RejectFunc);
// este pacote não conhece o envelope JSON da API.
package ratelimit
