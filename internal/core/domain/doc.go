// Package domain defines the core domain models for FreteHub.
//
// Domain models are pure value objects without any IO dependencies
// or framework coupling. This package contains:
//
//   - Session: the authenticated identity of the current client (token, user, company)
//   - Company: company registration value types (document, phones, address)
//   - Notification: read-only records shown by the navigation chrome
//   - Errors: domain-specific error definitions
package domain
