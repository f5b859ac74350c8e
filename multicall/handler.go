package multicall

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/svm-spoke/authority"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
)

const HANDLER_SIGNER_SEED = "handler_signer"

var PROGRAM_ID = solana.MustPublicKeyFromBase58("Fk1RpqsfeWt8KnFCTW9NQVdVxYvxuqjGn6iPB9wrmM8h")

// CompiledIx is one call of a handler message. Indexes point into the accounts of the message.
type CompiledIx struct {
	ProgramIdIndex    uint8
	AccountKeyIndexes []uint8
	Data              []byte
}

// EncodeMessage returns the handler message running the calls in order.
func EncodeMessage(ixs []CompiledIx) ([]byte, error) {
	return bin.MarshalBorsh(&ixs)
}

func DecodeMessage(data []byte) ([]CompiledIx, error) {
	var ixs []CompiledIx
	if err := bin.NewBorshDecoder(data).Decode(&ixs); err != nil {
		return nil, fmt.Errorf("failed decoding handler message: %w", err)
	}
	return ixs, nil
}

// HandlerSigner is the address the handler signs as. Funds meant to be routed by a message are
// sent to it.
func HandlerSigner() (solana.PublicKey, error) {
	return authority.NewDeriver(PROGRAM_ID).Address(HANDLER_SIGNER_SEED)
}

// Handler executes the calls of a fill message against the ledger. Only token and system
// transfers can be called, and the only signature available to them is the handler signer's.
type Handler struct {
	signer authority.Authority
	log    zerolog.Logger
}

func NewHandler() (*Handler, error) {
	signer, err := authority.NewDeriver(PROGRAM_ID).Authority(HANDLER_SIGNER_SEED)
	if err != nil {
		return nil, err
	}
	return &Handler{
		signer: signer,
		log:    log.With().Str("program", PROGRAM_ID.String()).Logger(),
	}, nil
}

func (h *Handler) HandleV3AcrossMessage(tx *store.Tx, call spoke.HandlerCall) error {
	ixs, err := DecodeMessage(call.Message)
	if err != nil {
		return err
	}

	writable := make(map[solana.PublicKey]bool, len(call.WritableAccounts))
	for _, account := range call.WritableAccounts {
		writable[account] = true
	}

	for i, ix := range ixs {
		program, err := accountAt(call.Accounts, ix.ProgramIdIndex)
		if err != nil {
			return fmt.Errorf("call %d: %w", i, err)
		}
		accounts := make([]*solana.AccountMeta, len(ix.AccountKeyIndexes))
		for j, index := range ix.AccountKeyIndexes {
			key, err := accountAt(call.Accounts, index)
			if err != nil {
				return fmt.Errorf("call %d: %w", i, err)
			}
			// signs only for calls that include the handler signer
			accounts[j] = solana.NewAccountMeta(key, writable[key], key == h.signer.Key())
		}

		if err := h.execute(tx, program, accounts, ix.Data); err != nil {
			return fmt.Errorf("call %d to %s: %w", i, program, err)
		}
		h.log.Debug().Int("call", i).Str("target", program.String()).Msg("Executed handler call")
	}
	return nil
}

func accountAt(accounts []solana.PublicKey, index uint8) (solana.PublicKey, error) {
	if int(index) >= len(accounts) {
		return solana.PublicKey{}, fmt.Errorf("%w: index %d of %d accounts", ErrAccountNotEnoughKeys, index, len(accounts))
	}
	return accounts[index], nil
}

func (h *Handler) execute(tx *store.Tx, program solana.PublicKey, accounts []*solana.AccountMeta, data []byte) error {
	switch program {
	case solana.TokenProgramID:
		return h.executeToken(tx, accounts, data)
	case solana.SystemProgramID:
		return h.executeSystem(tx, accounts, data)
	default:
		return ErrUnsupportedProgram
	}
}

func (h *Handler) executeToken(tx *store.Tx, accounts []*solana.AccountMeta, data []byte) error {
	inst, err := token.DecodeInstruction(accounts, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedInstruction, err)
	}

	switch ix := inst.Impl.(type) {
	case *token.Transfer:
		if len(ix.Accounts) < 3 {
			return ErrAccountNotEnoughKeys
		}
		source, destination, owner := ix.Accounts[0], ix.Accounts[1], ix.Accounts[2]
		if err := h.checkTransfer(source, destination, owner); err != nil {
			return err
		}
		account, err := store.TokenAccounts.MustGet(tx, source.PublicKey)
		if err != nil {
			return err
		}
		return tx.Transfer(source.PublicKey, destination.PublicKey, account.Mint, h.signer, *ix.Amount)
	case *token.TransferChecked:
		if len(ix.Accounts) < 4 {
			return ErrAccountNotEnoughKeys
		}
		source, mint, destination, owner := ix.Accounts[0], ix.Accounts[1], ix.Accounts[2], ix.Accounts[3]
		if err := h.checkTransfer(source, destination, owner); err != nil {
			return err
		}
		// mints carry no decimals in the ledger, only the mint key is checked
		return tx.Transfer(source.PublicKey, destination.PublicKey, mint.PublicKey, h.signer, *ix.Amount)
	default:
		return fmt.Errorf("%w: token instruction %d", ErrUnsupportedInstruction, inst.TypeID.Uint8())
	}
}

func (h *Handler) checkTransfer(source, destination, owner *solana.AccountMeta) error {
	if !owner.IsSigner {
		return fmt.Errorf("%w: owner %s", ErrMissingSignature, owner.PublicKey)
	}
	if !source.IsWritable {
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, source.PublicKey)
	}
	if !destination.IsWritable {
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, destination.PublicKey)
	}
	return nil
}

func (h *Handler) executeSystem(tx *store.Tx, accounts []*solana.AccountMeta, data []byte) error {
	if len(accounts) < 2 {
		return ErrAccountNotEnoughKeys
	}
	inst, err := system.DecodeInstruction(accounts, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedInstruction, err)
	}

	ix, ok := inst.Impl.(*system.Transfer)
	if !ok {
		return fmt.Errorf("%w: system instruction %d", ErrUnsupportedInstruction, inst.TypeID.Uint32())
	}
	from, to := ix.GetFundingAccount(), ix.GetRecipientAccount()
	if !from.IsSigner {
		return fmt.Errorf("%w: funding account %s", ErrMissingSignature, from.PublicKey)
	}
	if !from.IsWritable || !to.IsWritable {
		return fmt.Errorf("%w: lamport transfer from %s to %s", ErrAccountNotWritable, from.PublicKey, to.PublicKey)
	}
	return tx.TransferLamports(from.PublicKey, to.PublicKey, *ix.Lamports)
}
