// Package tlsroots builds the TLS configuration the CLI uses to reach the
// FreteHub API.
//
// The system trust store is always the base. A private CA (staging and
// on-premise deployments) can be appended from a PEM file, and a client
// certificate can be presented for gateways that require mutual TLS.
package tlsroots
