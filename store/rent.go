package store

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const (
	DISCRIMINATOR_SIZE = 8

	ACCOUNT_STORAGE_OVERHEAD  = 128
	LAMPORTS_PER_BYTE_YEAR    = 3480
	EXEMPTION_THRESHOLD_YEARS = 2
)

// MinimumBalance is the rent exempt lamport balance for an account holding dataLen bytes.
func MinimumBalance(dataLen int) uint64 {
	return uint64(ACCOUNT_STORAGE_OVERHEAD+dataLen) * LAMPORTS_PER_BYTE_YEAR * EXEMPTION_THRESHOLD_YEARS
}

// Lamports returns the lamport balance held at an address.
func (t *Tx) Lamports(address solana.PublicKey) (uint64, error) {
	b, err := t.bucket(bucketLamports)
	if err != nil {
		return 0, err
	}

	v := b.Get(address[:])
	if v == nil {
		return 0, nil
	}
	return binary.LittleEndian.Uint64(v), nil
}

func (t *Tx) setLamports(address solana.PublicKey, amount uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	b, err := t.bucket(bucketLamports)
	if err != nil {
		return err
	}

	if amount == 0 {
		return b.Delete(address[:])
	}
	v := make([]byte, 8)
	binary.LittleEndian.PutUint64(v, amount)
	return b.Put(address[:], v)
}

// Airdrop credits lamports to an address.
func (t *Tx) Airdrop(address solana.PublicKey, amount uint64) error {
	balance, err := t.Lamports(address)
	if err != nil {
		return err
	}
	next := balance + amount
	if next < balance {
		return ErrOverflow
	}
	return t.setLamports(address, next)
}

// TransferLamports moves lamports between two addresses.
func (t *Tx) TransferLamports(from, to solana.PublicKey, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}

	balance, err := t.Lamports(from)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientLamports, from, balance, amount)
	}
	if err := t.setLamports(from, balance-amount); err != nil {
		return err
	}
	return t.Airdrop(to, amount)
}

// fundRent tops up an account to the rent exempt balance for its size.
func (t *Tx) fundRent(payer, address solana.PublicKey, dataLen int) error {
	balance, err := t.Lamports(address)
	if err != nil {
		return err
	}

	required := MinimumBalance(dataLen)
	if balance >= required {
		return nil
	}
	return t.TransferLamports(payer, address, required-balance)
}

// drain moves every lamport held by an account to the destination.
func (t *Tx) drain(address, destination solana.PublicKey) error {
	balance, err := t.Lamports(address)
	if err != nil {
		return err
	}
	return t.TransferLamports(address, destination, balance)
}
