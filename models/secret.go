package models

import "time"

// SecretRecord is a protected record stored at rest: a credential, token
// or environment value owned by the host application.
//
// While the vault is unsealed the Value column holds a base64 envelope
// produced by the vault; rows migrated from a pre-vault installation may
// still hold plaintext, which the Encrypted flag makes explicit so readers
// never guess.
type SecretRecord struct {
	// ID is the record identifier (UUID string).
	ID string `json:"id"`

	// Name is the unique lookup key of the secret, e.g. "env:OPENAI_API_KEY".
	Name string `json:"name"`

	// Value is the stored payload: a base64 envelope when Encrypted is
	// true, legacy plaintext otherwise.
	Value string `json:"-"`

	// Encrypted reports whether Value is a base64 envelope. False only for
	// rows written before encryption-at-rest was enabled.
	Encrypted bool `json:"encrypted"`

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the record value was last replaced.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the SecretRecord model.
func (s SecretRecord) TableName() string {
	return "secrets"
}
