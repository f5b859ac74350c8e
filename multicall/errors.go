package multicall

import "errors"

var (
	ErrAccountNotEnoughKeys   = errors.New("not enough account keys given to the instruction")
	ErrUnsupportedProgram     = errors.New("program not callable by the handler")
	ErrUnsupportedInstruction = errors.New("instruction not callable by the handler")
	ErrMissingSignature       = errors.New("missing required signature")
	ErrAccountNotWritable     = errors.New("account not writable")
)
