// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// User is an account that owns contacts and can authenticate.
// PasswordHash is only ever set through the registration factory in the
// use case layer; it never holds a plaintext password.
type User struct {
	Record
	Username     string // Unique login identifier.
	Email        string // Unique contact email.
	PasswordHash string // Salted bcrypt hash of the password.
	IsStaff      bool   // Staff accounts may use the unscoped admin read paths.
}
