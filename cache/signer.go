package cache

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/svm-spoke/chains/evm/signature"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
)

const (
	SIGNER_TTL = time.Minute * 10
)

// SignerCache remembers the signer recovered from a digest and signature pair so repeated
// verification of the same quote skips the curve recovery.
type SignerCache struct {
	signerCache *ttlcache.Cache[string, solana.PublicKey]
}

func NewSignerCache(ctx context.Context) *SignerCache {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, solana.PublicKey](SIGNER_TTL),
	)

	sc := &SignerCache{
		signerCache: cache,
	}

	go cache.Start()
	go func() {
		<-ctx.Done()
		cache.Stop()
	}()
	return sc
}

func key(digest [32]byte, sig []byte) string {
	return hex.EncodeToString(digest[:]) + hex.EncodeToString(sig)
}

// Signer recovers the signer of the digest, reusing a previous recovery when present. Failed
// recoveries are not cached.
func (s *SignerCache) Signer(digest [32]byte, sig []byte) (solana.PublicKey, error) {
	id := key(digest, sig)
	if item := s.signerCache.Get(id); item != nil {
		return item.Value(), nil
	}

	signer, err := signature.RecoverSigner(digest, sig)
	if err != nil {
		return signer, err
	}

	log.Debug().Msgf("Cached signer %s for digest %x", signer, digest)
	s.signerCache.Set(id, signer, ttlcache.DefaultTTL)
	return signer, nil
}

// VerifyQuote checks the quote was signed by the expected signer.
func (s *SignerCache) VerifyQuote(expectedSigner solana.PublicKey, quote *sponsored.Quote, sig []byte) error {
	if expectedSigner.IsZero() {
		return signature.ErrQuoteSignerNotSet
	}

	digest, err := quote.TypedHash()
	if err != nil {
		return err
	}
	signer, err := s.Signer(digest, sig)
	if err != nil {
		return err
	}
	if signer != expectedSigner {
		return fmt.Errorf("%w: recovered signer %s", signature.ErrInvalidSignature, signer)
	}
	return nil
}

func (s *SignerCache) Len() int {
	return s.signerCache.Len()
}
