// internal/proofs/merkle.go
package proofs

import (
	"crypto/sha256"
	"errors"
)

// Domain-separation prefixes keep leaf and interior hashes distinct.
var (
	leafPrefix = []byte{0x00}
	nodePrefix = []byte{0x01}
)

// MerkleProof is a membership path from a leaf to the root.
type MerkleProof struct {
	// Path holds sibling hashes from leaf level upward.
	Path [][]byte
	// Index is the leaf position; its bits select left/right at each level.
	Index int
}

// MerkleTree is a fixed SHA-256 binary hash tree over a leaf set.
type MerkleTree struct {
	levels [][][]byte
}

// NewMerkleTree builds the tree bottom-up. Odd levels duplicate the final
// node.
func NewMerkleTree(leaves [][]byte) *MerkleTree {
	if len(leaves) == 0 {
		return &MerkleTree{}
	}

	level := make([][]byte, len(leaves))
	for i, leaf := range leaves {
		level[i] = hashLeaf(leaf)
	}

	levels := [][][]byte{level}
	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			right := level[i]
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashNode(level[i], right))
		}
		levels = append(levels, next)
		level = next
	}

	return &MerkleTree{levels: levels}
}

// Root returns the tree root, or nil for an empty tree.
func (t *MerkleTree) Root() []byte {
	if len(t.levels) == 0 {
		return nil
	}
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Prove builds the membership proof for the leaf at index.
func (t *MerkleTree) Prove(index int) (MerkleProof, error) {
	if len(t.levels) == 0 || index < 0 || index >= len(t.levels[0]) {
		return MerkleProof{}, errors.New("proofs: leaf index out of range")
	}

	proof := MerkleProof{Index: index}
	pos := index
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := pos ^ 1
		if sibling >= len(level) {
			sibling = pos
		}
		proof.Path = append(proof.Path, level[sibling])
		pos /= 2
	}
	return proof, nil
}

// VerifyMerkleProof reports whether leaf is a member of the tree with the
// given root.
func VerifyMerkleProof(root, leaf []byte, proof MerkleProof) bool {
	if len(root) == 0 {
		return false
	}

	current := hashLeaf(leaf)
	pos := proof.Index
	for _, sibling := range proof.Path {
		if pos%2 == 0 {
			current = hashNode(current, sibling)
		} else {
			current = hashNode(sibling, current)
		}
		pos /= 2
	}

	return equalHash(current, root)
}

func hashLeaf(leaf []byte) []byte {
	h := sha256.New()
	h.Write(leafPrefix)
	h.Write(leaf)
	return h.Sum(nil)
}

func hashNode(left, right []byte) []byte {
	h := sha256.New()
	h.Write(nodePrefix)
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

func equalHash(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
