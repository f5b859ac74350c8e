package spoke

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// authorization
	NotOwner                ErrorCode = "NotOwner"
	NotExclusiveRelayer     ErrorCode = "NotExclusiveRelayer"
	NotRelayer              ErrorCode = "NotRelayer"
	InvalidClaimInitializer ErrorCode = "InvalidClaimInitializer"
	InvalidAuthority        ErrorCode = "InvalidAuthority"
	InvalidRemoteDomain     ErrorCode = "InvalidRemoteDomain"
	InvalidRemoteSender     ErrorCode = "InvalidRemoteSender"

	// validation
	AlreadyInitialized             ErrorCode = "AlreadyInitialized"
	NotInitialized                 ErrorCode = "NotInitialized"
	DisabledRoute                  ErrorCode = "DisabledRoute"
	DepositsArePaused              ErrorCode = "DepositsArePaused"
	FillsArePaused                 ErrorCode = "FillsArePaused"
	InvalidRelayHash               ErrorCode = "InvalidRelayHash"
	ExpiredFillDeadline            ErrorCode = "ExpiredFillDeadline"
	FillDeadlineNotPassed          ErrorCode = "FillDeadlineNotPassed"
	NoSlowFillsInExclusivityWindow ErrorCode = "NoSlowFillsInExclusivityWindow"
	InvalidSlowFillRequest         ErrorCode = "InvalidSlowFillRequest"
	InvalidChainId                 ErrorCode = "InvalidChainId"
	InvalidMint                    ErrorCode = "InvalidMint"
	InvalidMerkleProof             ErrorCode = "InvalidMerkleProof"
	InvalidMerkleLeaf              ErrorCode = "InvalidMerkleLeaf"
	InvalidRootBundle              ErrorCode = "InvalidRootBundle"
	InvalidRefund                  ErrorCode = "InvalidRefund"
	InvalidQuoteTimestamp          ErrorCode = "InvalidQuoteTimestamp"
	InvalidFillDeadline            ErrorCode = "InvalidFillDeadline"
	InvalidExclusiveRelayer        ErrorCode = "InvalidExclusiveRelayer"
	InvalidOutputToken             ErrorCode = "InvalidOutputToken"
	InvalidCalldata                ErrorCode = "InvalidCalldata"
	InvalidMessage                 ErrorCode = "InvalidMessage"
	InvalidMessageHandler          ErrorCode = "InvalidMessageHandler"
	MessengerNotSet                ErrorCode = "MessengerNotSet"

	// replay
	RelayFilled       ErrorCode = "RelayFilled"
	ClaimedMerkleLeaf ErrorCode = "ClaimedMerkleLeaf"

	// capacity
	InsufficientSpokePoolBalanceToExecuteLeaf ErrorCode = "InsufficientSpokePoolBalanceToExecuteLeaf"
	ExceededPendingBridgeAmount               ErrorCode = "ExceededPendingBridgeAmount"
	Overflow                                  ErrorCode = "Overflow"

	// claims
	ZeroRefundClaim    ErrorCode = "ZeroRefundClaim"
	NonZeroRefundClaim ErrorCode = "NonZeroRefundClaim"
)

// Error aborts a program call. Errors match with errors.Is on their code.
type Error struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Msg == "" && e.Err == nil:
		return string(e.Code)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("%s: %s", e.Code, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Msg, e.Err)
	}
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func spokeErr(code ErrorCode, format string, args ...interface{}) error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func wrapErr(code ErrorCode, err error) error {
	return &Error{Code: code, Err: err}
}

var (
	ErrNotOwner                                  = &Error{Code: NotOwner}
	ErrNotExclusiveRelayer                       = &Error{Code: NotExclusiveRelayer}
	ErrNotRelayer                                = &Error{Code: NotRelayer}
	ErrInvalidClaimInitializer                   = &Error{Code: InvalidClaimInitializer}
	ErrInvalidAuthority                          = &Error{Code: InvalidAuthority}
	ErrInvalidRemoteDomain                       = &Error{Code: InvalidRemoteDomain}
	ErrInvalidRemoteSender                       = &Error{Code: InvalidRemoteSender}
	ErrAlreadyInitialized                        = &Error{Code: AlreadyInitialized}
	ErrNotInitialized                            = &Error{Code: NotInitialized}
	ErrDisabledRoute                             = &Error{Code: DisabledRoute}
	ErrDepositsArePaused                         = &Error{Code: DepositsArePaused}
	ErrFillsArePaused                            = &Error{Code: FillsArePaused}
	ErrInvalidRelayHash                          = &Error{Code: InvalidRelayHash}
	ErrExpiredFillDeadline                       = &Error{Code: ExpiredFillDeadline}
	ErrFillDeadlineNotPassed                     = &Error{Code: FillDeadlineNotPassed}
	ErrNoSlowFillsInExclusivityWindow            = &Error{Code: NoSlowFillsInExclusivityWindow}
	ErrInvalidSlowFillRequest                    = &Error{Code: InvalidSlowFillRequest}
	ErrInvalidChainId                            = &Error{Code: InvalidChainId}
	ErrInvalidMint                               = &Error{Code: InvalidMint}
	ErrInvalidMerkleProof                        = &Error{Code: InvalidMerkleProof}
	ErrInvalidMerkleLeaf                         = &Error{Code: InvalidMerkleLeaf}
	ErrInvalidRootBundle                         = &Error{Code: InvalidRootBundle}
	ErrInvalidRefund                             = &Error{Code: InvalidRefund}
	ErrInvalidQuoteTimestamp                     = &Error{Code: InvalidQuoteTimestamp}
	ErrInvalidFillDeadline                       = &Error{Code: InvalidFillDeadline}
	ErrInvalidExclusiveRelayer                   = &Error{Code: InvalidExclusiveRelayer}
	ErrInvalidOutputToken                        = &Error{Code: InvalidOutputToken}
	ErrInvalidCalldata                           = &Error{Code: InvalidCalldata}
	ErrInvalidMessage                            = &Error{Code: InvalidMessage}
	ErrInvalidMessageHandler                     = &Error{Code: InvalidMessageHandler}
	ErrMessengerNotSet                           = &Error{Code: MessengerNotSet}
	ErrRelayFilled                               = &Error{Code: RelayFilled}
	ErrClaimedMerkleLeaf                         = &Error{Code: ClaimedMerkleLeaf}
	ErrInsufficientSpokePoolBalanceToExecuteLeaf = &Error{Code: InsufficientSpokePoolBalanceToExecuteLeaf}
	ErrExceededPendingBridgeAmount               = &Error{Code: ExceededPendingBridgeAmount}
	ErrOverflow                                  = &Error{Code: Overflow}
	ErrZeroRefundClaim                           = &Error{Code: ZeroRefundClaim}
	ErrNonZeroRefundClaim                        = &Error{Code: NonZeroRefundClaim}
)
