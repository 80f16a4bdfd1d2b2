// Package domain defines the core domain models for FreteHub.
package domain

// Notification is a read-only message shown by the navigation chrome.
// Timestamp is kept exactly as the server sent it.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
