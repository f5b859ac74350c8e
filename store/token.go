package store

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/authority"
)

// TOKEN_ACCOUNT_SIZE matches the spl token account layout so rent is charged accordingly.
const TOKEN_ACCOUNT_SIZE = 165

// AssociatedTokenAddress returns the canonical token account address for an owner and mint.
func AssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed deriving token account of %s for mint %s: %w", owner, mint, err)
	}
	return address, nil
}

// CreateTokenAccount opens an empty token account at an arbitrary address.
func (t *Tx) CreateTokenAccount(payer, address, mint, owner solana.PublicKey) error {
	exists, err := TokenAccounts.Exists(t, address)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: token account %s", ErrAccountExists, address)
	}

	if err := TokenAccounts.Save(t, payer, address, &TokenAccount{Mint: mint, Owner: owner}); err != nil {
		return err
	}
	return t.fundRent(payer, address, TOKEN_ACCOUNT_SIZE)
}

// CreateAssociatedTokenAccount opens the canonical token account when it does not exist yet.
func (t *Tx) CreateAssociatedTokenAccount(payer, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	address, err := AssociatedTokenAddress(owner, mint)
	if err != nil {
		return address, err
	}

	account, ok, err := TokenAccounts.Get(t, address)
	if err != nil {
		return address, err
	}
	if ok {
		if account.Mint != mint || account.Owner != owner {
			return address, fmt.Errorf("%w: token account %s", ErrOwnerMismatch, address)
		}
		return address, nil
	}
	return address, t.CreateTokenAccount(payer, address, mint, owner)
}

// TokenAccount loads a token account and checks its mint.
func (t *Tx) TokenAccount(address, mint solana.PublicKey) (*TokenAccount, error) {
	account, err := TokenAccounts.MustGet(t, address)
	if err != nil {
		return nil, err
	}
	if account.Mint != mint {
		return nil, fmt.Errorf("%w: token account %s holds %s", ErrMintMismatch, address, account.Mint)
	}
	return account, nil
}

// Balance returns the token amount held by the account, zero when it does not exist.
func (t *Tx) Balance(address solana.PublicKey) (uint64, error) {
	account, ok, err := TokenAccounts.Get(t, address)
	if err != nil || !ok {
		return 0, err
	}
	return account.Amount, nil
}

func (t *Tx) putTokenAccount(address solana.PublicKey, account *TokenAccount) error {
	// token accounts are fixed size, rent was charged on creation
	return TokenAccounts.Save(t, address, address, account)
}

// Transfer moves tokens between two accounts of the mint. The authority must own the source
// account or be its delegate for at least the amount.
func (t *Tx) Transfer(from, to, mint solana.PublicKey, auth authority.Authority, amount uint64) error {
	source, err := t.TokenAccount(from, mint)
	if err != nil {
		return err
	}
	destination, err := t.TokenAccount(to, mint)
	if err != nil {
		return err
	}

	if err := debitAuthorized(source, auth, amount); err != nil {
		return fmt.Errorf("transfer from %s: %w", from, err)
	}
	if from == to {
		destination = source
	}
	next := destination.Amount + amount
	if next < destination.Amount {
		return ErrOverflow
	}
	destination.Amount = next

	if err := t.putTokenAccount(from, source); err != nil {
		return err
	}
	return t.putTokenAccount(to, destination)
}

func debitAuthorized(account *TokenAccount, auth authority.Authority, amount uint64) error {
	if account.Amount < amount {
		return fmt.Errorf("%w: has %d, needs %d", ErrInsufficientFunds, account.Amount, amount)
	}

	switch {
	case auth.Key() == account.Owner:
	case !account.Delegate.IsZero() && auth.Key() == account.Delegate:
		if account.DelegatedAmount < amount {
			return fmt.Errorf("%w: delegated %d, needs %d", ErrInsufficientFunds, account.DelegatedAmount, amount)
		}
		account.DelegatedAmount -= amount
		if account.DelegatedAmount == 0 {
			account.Delegate = solana.PublicKey{}
		}
	default:
		return fmt.Errorf("%w: %s cannot move funds of %s", ErrOwnerMismatch, auth, account.Owner)
	}

	account.Amount -= amount
	return nil
}

// Approve lets a delegate move up to amount from the account.
func (t *Tx) Approve(address, mint solana.PublicKey, owner authority.Authority, delegate solana.PublicKey, amount uint64) error {
	account, err := t.TokenAccount(address, mint)
	if err != nil {
		return err
	}
	if account.Owner != owner.Key() {
		return fmt.Errorf("%w: %s does not own %s", ErrOwnerMismatch, owner, address)
	}

	account.Delegate = delegate
	account.DelegatedAmount = amount
	return t.putTokenAccount(address, account)
}

// MintTo credits newly issued tokens to an account.
func (t *Tx) MintTo(address, mint solana.PublicKey, amount uint64) error {
	account, err := t.TokenAccount(address, mint)
	if err != nil {
		return err
	}

	next := account.Amount + amount
	if next < account.Amount {
		return ErrOverflow
	}
	account.Amount = next
	return t.putTokenAccount(address, account)
}

// Burn destroys tokens held by an account.
func (t *Tx) Burn(address, mint solana.PublicKey, auth authority.Authority, amount uint64) error {
	account, err := t.TokenAccount(address, mint)
	if err != nil {
		return err
	}
	if err := debitAuthorized(account, auth, amount); err != nil {
		return fmt.Errorf("burn from %s: %w", address, err)
	}
	return t.putTokenAccount(address, account)
}
