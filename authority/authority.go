package authority

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Authority is a key allowed to authorize actions during a single call. It is either a signer
// authenticated by the host or a handle derived from the program id.
type Authority struct {
	key       solana.PublicKey
	namespace string
}

// Signer wraps a key whose signature was verified by the caller.
func Signer(key solana.PublicKey) Authority {
	return Authority{key: key}
}

func (a Authority) Key() solana.PublicKey {
	return a.key
}

// Derived reports whether the authority is a program derived handle.
func (a Authority) Derived() bool {
	return a.namespace != ""
}

// Namespace returns the namespace the handle was derived under.
func (a Authority) Namespace() string {
	return a.namespace
}

func (a Authority) String() string {
	if a.Derived() {
		return fmt.Sprintf("%s(%s)", a.namespace, a.key)
	}
	return a.key.String()
}

// Deriver derives deterministic addresses for a program. Only the holder of a Deriver for the
// program id can act as those addresses, and only through the namespace that produced them.
type Deriver struct {
	programID solana.PublicKey
}

func NewDeriver(programID solana.PublicKey) Deriver {
	return Deriver{programID: programID}
}

func (d Deriver) ProgramID() solana.PublicKey {
	return d.programID
}

// Address derives the address for a namespace and seeds.
func (d Deriver) Address(namespace string, seeds ...[]byte) (solana.PublicKey, error) {
	if namespace == "" {
		return solana.PublicKey{}, fmt.Errorf("empty namespace")
	}

	all := make([][]byte, 0, len(seeds)+1)
	all = append(all, []byte(namespace))
	all = append(all, seeds...)
	address, _, err := solana.FindProgramAddress(all, d.programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed deriving %s address: %w", namespace, err)
	}
	return address, nil
}

// Authority derives an address and returns a handle able to authorize actions as it.
func (d Deriver) Authority(namespace string, seeds ...[]byte) (Authority, error) {
	address, err := d.Address(namespace, seeds...)
	if err != nil {
		return Authority{}, err
	}
	return Authority{key: address, namespace: namespace}, nil
}
