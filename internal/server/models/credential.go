package models

// Credential is the singleton record holding the hashed shared viewer
// password. At most one row exists at any time; setting a new password
// replaces the row wholesale.
type Credential struct {
	ID           int64
	HashedSecret string
}
