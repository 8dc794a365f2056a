package vault

import (
	"errors"

	"github.com/Mixik7/moltis/internal/crypto"
)

// Sentinel errors returned by vault operations. Callers should use
// [errors.Is] to match against these values; the internal representation
// behind each kind is never part of the contract.
var (
	// ErrNotInitialized is returned when an operation requires an existing
	// vault but no metadata row has ever been written.
	ErrNotInitialized = errors.New("vault is not initialized")

	// ErrAlreadyInitialized is returned when Initialize finds an existing
	// metadata row. Initialization is a once-only operation.
	ErrAlreadyInitialized = errors.New("vault is already initialized")

	// ErrSealed is returned when protected data is read or written while
	// the data encryption key is not in memory.
	ErrSealed = errors.New("vault is sealed")

	// ErrBadPassword is returned when a password fails to unwrap the
	// stored DEK. A damaged wrapper blob produces the same error: the two
	// cases must not be distinguishable.
	ErrBadPassword = errors.New("incorrect password")

	// ErrInvalidRecoveryPhrase is returned when a recovery phrase fails
	// either the stored hash check or the recovery unwrap. Which check
	// failed is deliberately not exposed.
	ErrInvalidRecoveryPhrase = errors.New("incorrect recovery phrase")

	// ErrRecoveryNotConfigured is returned when recovery unlock is
	// attempted but the metadata row carries no recovery wrapper.
	ErrRecoveryNotConfigured = errors.New("recovery is not configured")

	// ErrStorage wraps failures of the injected metadata store.
	ErrStorage = errors.New("vault storage error")

	// ErrInternal is reserved for invariant violations. The host must
	// treat it as fatal.
	ErrInternal = errors.New("internal vault error")
)

// Crypto-layer kinds surfaced to vault callers verbatim.
var (
	// ErrMalformedEnvelope is returned by DecryptString when the input is
	// not a parseable envelope.
	ErrMalformedEnvelope = crypto.ErrMalformedEnvelope

	// ErrCryptoFailure is returned by DecryptString when an authentication
	// tag does not verify (tampering, or a wrong AAD).
	ErrCryptoFailure = crypto.ErrCryptoFailure

	// ErrBadKdfParams is returned when stored KDF parameters are
	// unparseable or outside accepted bounds.
	ErrBadKdfParams = crypto.ErrBadKdfParams
)
