package vault

// KeySize is the AES-256 key length in bytes
const KeySize = 32

// Error messages
const (
	ErrMsgInvalidKeySize       = "encryption key must be exactly 32 bytes"
	ErrMsgCiphertextTooShort   = "ciphertext too short"
	ErrMsgEncryptTokenFailed   = "failed to encrypt token"
	ErrMsgDecryptTokenFailed   = "failed to decrypt token"
	ErrMsgStoreTokensFailed    = "failed to store tokens"
	ErrMsgSaveConnectionFailed = "failed to save connection"
)

// Log messages
const (
	LogMsgConnectionSaved = "Provider connection saved"
	LogMsgTokensStored    = "Provider tokens stored"
)
