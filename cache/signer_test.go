package cache_test

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/cache"
	"github.com/sprintertech/svm-spoke/chains/evm/signature"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
	"github.com/stretchr/testify/suite"
)

type SignerCacheTestSuite struct {
	suite.Suite

	sc     *cache.SignerCache
	cancel context.CancelFunc
	key    *ecdsa.PrivateKey
	signer solana.PublicKey
	quote  *sponsored.Quote
}

func TestRunSignerCacheTestSuite(t *testing.T) {
	suite.Run(t, new(SignerCacheTestSuite))
}

func (s *SignerCacheTestSuite) SetupTest() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.sc = cache.NewSignerCache(ctx)

	key, err := crypto.GenerateKey()
	s.Nil(err)
	s.key = key
	s.signer = signature.EVMSigner(crypto.PubkeyToAddress(key.PublicKey))
	s.quote = &sponsored.Quote{
		SourceDomain: 5,
		Amount:       10,
		Nonce:        [32]byte{3},
		Deadline:     2_000_000_000,
	}
}

func (s *SignerCacheTestSuite) TearDownTest() {
	s.cancel()
}

func (s *SignerCacheTestSuite) sign() []byte {
	digest, err := s.quote.TypedHash()
	s.Nil(err)
	sig, err := crypto.Sign(digest[:], s.key)
	s.Nil(err)
	sig[64] += 27
	return sig
}

func (s *SignerCacheTestSuite) Test_VerifyQuote_CachesSigner() {
	sig := s.sign()

	s.Nil(s.sc.VerifyQuote(s.signer, s.quote, sig))
	s.Nil(s.sc.VerifyQuote(s.signer, s.quote, sig))

	s.Equal(1, s.sc.Len())
}

func (s *SignerCacheTestSuite) Test_VerifyQuote_WrongSigner() {
	err := s.sc.VerifyQuote(solana.NewWallet().PublicKey(), s.quote, s.sign())

	s.ErrorIs(err, signature.ErrInvalidSignature)
}

func (s *SignerCacheTestSuite) Test_VerifyQuote_SignerNotSet() {
	err := s.sc.VerifyQuote(solana.PublicKey{}, s.quote, s.sign())

	s.ErrorIs(err, signature.ErrQuoteSignerNotSet)
	s.Equal(0, s.sc.Len())
}

func (s *SignerCacheTestSuite) Test_Signer_InvalidSignatureNotCached() {
	_, err := s.sc.Signer([32]byte{1}, []byte{1, 2, 3})

	s.ErrorIs(err, signature.ErrInvalidSignatureLength)
	s.Equal(0, s.sc.Len())
}
