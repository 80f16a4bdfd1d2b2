// Package account defines the FreteHub account forms (login, registration,
// free trial and company details) on top of the generic form controller,
// and the notifications feed shown to signed-in users.
package account
