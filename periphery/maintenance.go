package periphery

import (
	"fmt"

	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
)

// ReclaimUsedNonce deletes the nonce record of an expired quote and returns its rent to the
// rent fund. An expired quote can not be replayed, so the record is no longer needed.
func (p *Periphery) ReclaimUsedNonce(nonce [32]byte) error {
	key, err := p.UsedNonceAddress(nonce)
	if err != nil {
		return err
	}
	rentFund, err := p.RentFundAddress()
	if err != nil {
		return err
	}

	return p.update(func(tx *store.Tx, now uint32, emit func(spoke.Event)) error {
		if _, _, err := p.loadState(tx); err != nil {
			return err
		}
		used, err := store.UsedNonces.MustGet(tx, key)
		if err != nil {
			return err
		}
		if used.QuoteDeadline >= uint64(now) {
			return fmt.Errorf("%w: closes after %d", ErrQuoteDeadlineNotPassed, used.QuoteDeadline)
		}
		if err := store.UsedNonces.Close(tx, key, rentFund); err != nil {
			return err
		}

		emit(ReclaimedUsedNonceAccount{Nonce: nonce, UsedNonce: key})
		return nil
	})
}

type UsedNonceCloseInfo struct {
	CanCloseAfter uint64
	CanCloseNow   bool
}

// UsedNonceCloseInfo reports when the nonce record can be reclaimed.
func (p *Periphery) UsedNonceCloseInfo(nonce [32]byte) (UsedNonceCloseInfo, error) {
	var info UsedNonceCloseInfo
	key, err := p.UsedNonceAddress(nonce)
	if err != nil {
		return info, err
	}

	now := p.clock.Now()
	err = p.db.View(func(tx *store.Tx) error {
		used, err := store.UsedNonces.MustGet(tx, key)
		if err != nil {
			return err
		}
		info.CanCloseAfter = used.QuoteDeadline
		info.CanCloseNow = used.QuoteDeadline < uint64(now)
		return nil
	})
	return info, err
}
