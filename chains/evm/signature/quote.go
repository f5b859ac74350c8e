package signature

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/sprintertech/svm-spoke/protocol/sponsored"
)

const (
	SIGNATURE_LENGTH = 65
	// ethereum style recovery indicators, 27 + recovery id
	MIN_RECOVERY_ID = 27
	MAX_RECOVERY_ID = 30
)

var (
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	ErrInvalidRecoveryID      = errors.New("invalid signature recovery id")
	ErrInvalidSValue          = errors.New("invalid signature s value")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrQuoteSignerNotSet      = errors.New("quote signer not set")

	secp256k1HalfN = new(big.Int).Rsh(crypto.S256().Params().N, 1)
)

// RecoverSigner recovers the evm address that signed the digest. The address is returned in the
// low 20 bytes of a 32 byte key with the high 12 bytes zeroed.
func RecoverSigner(digest [32]byte, signature []byte) (solana.PublicKey, error) {
	var signer solana.PublicKey
	if len(signature) != SIGNATURE_LENGTH {
		return signer, ErrInvalidSignatureLength
	}

	v := signature[SIGNATURE_LENGTH-1]
	if v < MIN_RECOVERY_ID || v > MAX_RECOVERY_ID {
		return signer, ErrInvalidRecoveryID
	}

	s := new(big.Int).SetBytes(signature[32:64])
	if s.Cmp(secp256k1HalfN) > 0 {
		return signer, ErrInvalidSValue
	}

	sig := make([]byte, SIGNATURE_LENGTH)
	copy(sig, signature)
	sig[SIGNATURE_LENGTH-1] = v - MIN_RECOVERY_ID

	pubkey, err := crypto.Ecrecover(digest[:], sig)
	if err != nil {
		return signer, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	copy(signer[:], crypto.Keccak256(pubkey[1:]))
	for i := 0; i < 12; i++ {
		signer[i] = 0
	}
	return signer, nil
}

// VerifyQuote checks the quote was signed by the expected signer. A zero expected signer means
// sponsored deposits are disabled.
func VerifyQuote(expectedSigner solana.PublicKey, quote *sponsored.Quote, signature []byte) error {
	if expectedSigner.IsZero() {
		return ErrQuoteSignerNotSet
	}

	digest, err := quote.TypedHash()
	if err != nil {
		return err
	}

	signer, err := RecoverSigner(digest, signature)
	if err != nil {
		return err
	}
	if signer != expectedSigner {
		return fmt.Errorf("%w: recovered signer %s", ErrInvalidSignature, signer)
	}
	return nil
}

// EVMSigner converts a 20 byte evm address to its 32 byte key form.
func EVMSigner(address [20]byte) solana.PublicKey {
	var k solana.PublicKey
	copy(k[12:], address[:])
	return k
}
