package periphery

import "errors"

var (
	ErrAlreadyInitialized     = errors.New("periphery already initialized")
	ErrNotInitialized         = errors.New("periphery not initialized")
	ErrNotOwner               = errors.New("only the owner can call this")
	ErrSignerUnchanged        = errors.New("quote signer unchanged")
	ErrInvalidDeadline        = errors.New("invalid quote deadline")
	ErrInvalidSourceDomain    = errors.New("invalid source domain")
	ErrInvalidMint            = errors.New("invalid mint key")
	ErrAmountNotPositive      = errors.New("amount must be greater than 0")
	ErrAmountBelowMinimum     = errors.New("amount below minimum deposit")
	ErrUsedNonce              = errors.New("quote nonce already used")
	ErrQuoteDeadlineNotPassed = errors.New("the quote deadline has not passed")
)
