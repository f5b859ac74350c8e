package store

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Table is a bucket of Borsh encoded records keyed by their derived address.
type Table[T any] struct {
	name []byte
}

// Size is the stored size of a record including its discriminator.
func (t Table[T]) Size(v *T) (int, error) {
	encoded, err := bin.MarshalBorsh(v)
	if err != nil {
		return 0, err
	}
	return DISCRIMINATOR_SIZE + len(encoded), nil
}

// Get loads the record at key. The bool is false when no record exists.
func (t Table[T]) Get(tx *Tx, key solana.PublicKey) (*T, bool, error) {
	b, err := tx.bucket(t.name)
	if err != nil {
		return nil, false, err
	}

	data := b.Get(key[:])
	if data == nil {
		return nil, false, nil
	}

	v := new(T)
	if err := bin.NewBorshDecoder(data).Decode(v); err != nil {
		return nil, false, fmt.Errorf("failed decoding %s record %s: %w", string(t.name), key, err)
	}
	return v, true, nil
}

// MustGet loads the record at key, failing with ErrNotFound when absent.
func (t Table[T]) MustGet(tx *Tx, key solana.PublicKey) (*T, error) {
	v, ok, err := t.Get(tx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, string(t.name), key)
	}
	return v, nil
}

// Exists reports whether a record is stored at key.
func (t Table[T]) Exists(tx *Tx, key solana.PublicKey) (bool, error) {
	b, err := tx.bucket(t.name)
	if err != nil {
		return false, err
	}
	return b.Get(key[:]) != nil, nil
}

// Create stores a new record, charging the payer the rent for its size.
func (t Table[T]) Create(tx *Tx, payer, key solana.PublicKey, v *T) error {
	exists, err := t.Exists(tx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s %s", ErrAccountExists, string(t.name), key)
	}
	return t.Save(tx, payer, key, v)
}

// Save writes the record, topping up rent from the payer when the record grew.
func (t Table[T]) Save(tx *Tx, payer, key solana.PublicKey, v *T) error {
	if err := tx.writable(); err != nil {
		return err
	}
	b, err := tx.bucket(t.name)
	if err != nil {
		return err
	}

	encoded, err := bin.MarshalBorsh(v)
	if err != nil {
		return err
	}
	if err := tx.fundRent(payer, key, DISCRIMINATOR_SIZE+len(encoded)); err != nil {
		return err
	}
	return b.Put(key[:], encoded)
}

// Close deletes the record and sends its lamports to the destination.
func (t Table[T]) Close(tx *Tx, key, destination solana.PublicKey) error {
	if err := tx.writable(); err != nil {
		return err
	}
	b, err := tx.bucket(t.name)
	if err != nil {
		return err
	}

	if b.Get(key[:]) == nil {
		return fmt.Errorf("%w: %s %s", ErrNotFound, string(t.name), key)
	}
	if err := b.Delete(key[:]); err != nil {
		return err
	}
	return tx.drain(key, destination)
}

// ForEach visits every record in key order.
func (t Table[T]) ForEach(tx *Tx, fn func(key solana.PublicKey, v *T) error) error {
	b, err := tx.bucket(t.name)
	if err != nil {
		return err
	}

	return b.ForEach(func(k, data []byte) error {
		v := new(T)
		if err := bin.NewBorshDecoder(data).Decode(v); err != nil {
			return err
		}
		return fn(solana.PublicKeyFromBytes(k), v)
	})
}
