package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketState               = []byte("state")
	bucketFillStatus          = []byte("fill_status")
	bucketRootBundles         = []byte("root_bundles")
	bucketClaimAccounts       = []byte("claim_accounts")
	bucketTransferLiabilities = []byte("transfer_liabilities")
	bucketRoutes              = []byte("routes")
	bucketTokenAccounts       = []byte("token_accounts")
	bucketLamports            = []byte("lamports")
	bucketPeripheryState      = []byte("periphery_state")
	bucketUsedNonces          = []byte("used_nonces")
	bucketMinimumDeposits     = []byte("minimum_deposits")
	bucketMessages            = []byte("cctp_messages")
	bucketMessengerState      = []byte("cctp_messenger")

	buckets = [][]byte{
		bucketState,
		bucketFillStatus,
		bucketRootBundles,
		bucketClaimAccounts,
		bucketTransferLiabilities,
		bucketRoutes,
		bucketTokenAccounts,
		bucketLamports,
		bucketPeripheryState,
		bucketUsedNonces,
		bucketMinimumDeposits,
		bucketMessages,
		bucketMessengerState,
	}
)

var (
	ErrNotFound             = errors.New("account not found")
	ErrAccountExists        = errors.New("account already exists")
	ErrInsufficientLamports = errors.New("insufficient lamports")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrOwnerMismatch        = errors.New("owner does not match")
	ErrMintMismatch         = errors.New("account mint mismatch")
	ErrOverflow             = errors.New("arithmetic overflow")
	ErrReadOnly             = errors.New("read only transaction")
)

// DB is the program account store. Every call runs in one bbolt transaction so a failed call
// leaves no trace.
type DB struct {
	db *bolt.DB
}

// Open opens or creates the account store at path.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("db path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	bdb, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	if err := bdb.Update(func(tx *bolt.Tx) error {
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	return &DB{db: bdb}, nil
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Update runs fn in a read-write transaction. Returning an error rolls back every write.
func (d *DB) Update(fn func(tx *Tx) error) error {
	return d.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// View runs fn in a read only transaction.
func (d *DB) View(fn func(tx *Tx) error) error {
	return d.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// Tx is a single all-or-nothing unit of work against the store.
type Tx struct {
	tx *bolt.Tx
}

func (t *Tx) bucket(name []byte) (*bolt.Bucket, error) {
	b := t.tx.Bucket(name)
	if b == nil {
		return nil, fmt.Errorf("bucket %s missing", string(name))
	}
	return b, nil
}

func (t *Tx) writable() error {
	if !t.tx.Writable() {
		return ErrReadOnly
	}
	return nil
}
