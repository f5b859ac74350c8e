package merkle

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"
)

// Verify checks that leaf is part of the tree with the given root. Pairs are hashed in sorted
// order so proofs carry no position information.
func Verify(proof [][32]byte, root [32]byte, leaf [32]byte) bool {
	return ProcessProof(proof, leaf) == root
}

// ProcessProof walks the proof from the leaf and returns the reconstructed root.
func ProcessProof(proof [][32]byte, leaf [32]byte) [32]byte {
	computed := leaf
	for _, sibling := range proof {
		computed = HashPair(computed, sibling)
	}
	return computed
}

// HashPair is the commutative keccak256 of two nodes.
func HashPair(a, b [32]byte) [32]byte {
	var out [32]byte
	if bytes.Compare(a[:], b[:]) < 0 {
		copy(out[:], crypto.Keccak256(a[:], b[:]))
	} else {
		copy(out[:], crypto.Keccak256(b[:], a[:]))
	}
	return out
}
