// internal/proofs/proofs_test.go
package proofs

import (
	"context"
	"testing"
)

func TestSuiteCasesRun(t *testing.T) {
	cases, err := Suite()
	if err != nil {
		t.Fatalf("Suite: %v", err)
	}

	expected := []string{"commitment", "ecdsa-prove", "ecdsa-verify", "merkle-proof", "merkle-verify"}
	if len(cases) != len(expected) {
		t.Fatalf("case count = %d, want %d", len(cases), len(expected))
	}
	for i, c := range cases {
		if c.Name != expected[i] {
			t.Fatalf("case %d = %q, want %q", i, c.Name, expected[i])
		}
		if _, err := c.Op(context.Background()); err != nil {
			t.Fatalf("case %q failed: %v", c.Name, err)
		}
	}
}

func TestCommitmentOpens(t *testing.T) {
	data := []byte("the proof payload")

	commitment, opening, err := Commit(data)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !Open(commitment, opening, data) {
		t.Fatal("commitment did not open with the right payload")
	}
	if Open(commitment, opening, []byte("tampered payload")) {
		t.Fatal("commitment opened with the wrong payload")
	}

	other, _, err := Commit(data)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if string(other) == string(commitment) {
		t.Fatal("two commitments to the same payload should differ (fresh openings)")
	}
}

func TestMerkleProofVerifies(t *testing.T) {
	leaves := [][]byte{
		[]byte("alpha"), []byte("bravo"), []byte("charlie"),
		[]byte("delta"), []byte("echo"),
	}
	tree := NewMerkleTree(leaves)

	for i, leaf := range leaves {
		proof, err := tree.Prove(i)
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		if !VerifyMerkleProof(tree.Root(), leaf, proof) {
			t.Fatalf("proof for leaf %d did not verify", i)
		}
	}
}

func TestMerkleProofRejectsTampering(t *testing.T) {
	leaves := [][]byte{[]byte("alpha"), []byte("bravo"), []byte("charlie"), []byte("delta")}
	tree := NewMerkleTree(leaves)

	proof, err := tree.Prove(1)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if VerifyMerkleProof(tree.Root(), []byte("forged"), proof) {
		t.Fatal("forged leaf verified")
	}

	wrongIndex := proof
	wrongIndex.Index = 2
	if VerifyMerkleProof(tree.Root(), leaves[1], wrongIndex) {
		t.Fatal("proof with wrong index verified")
	}
}

func TestMerkleEdgeCases(t *testing.T) {
	empty := NewMerkleTree(nil)
	if empty.Root() != nil {
		t.Fatal("empty tree should have nil root")
	}
	if _, err := empty.Prove(0); err == nil {
		t.Fatal("Prove on empty tree should fail")
	}

	single := NewMerkleTree([][]byte{[]byte("only")})
	proof, err := single.Prove(0)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !VerifyMerkleProof(single.Root(), []byte("only"), proof) {
		t.Fatal("single-leaf proof did not verify")
	}

	if _, err := single.Prove(5); err == nil {
		t.Fatal("out-of-range index should fail")
	}
}
