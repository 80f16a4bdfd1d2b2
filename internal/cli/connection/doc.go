// Package connection provides the HTTP client used to talk to the FreteHub
// API.
//
// The client sends JSON bodies, stamps every request with the CLI user
// agent and the request ID carried by the context, optionally attaches a
// bearer token, and can be throttled with a token-bucket rate limiter.
// TLS trust is configured through internal/infra/tlsroots.
package connection
