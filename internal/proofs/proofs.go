// internal/proofs/proofs.go
// Package proofs supplies the benchmarked units of work: small cryptographic
// proof generation and verification workloads. The measurement core treats
// every one of them as opaque.
package proofs

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/provelab/proofbench/internal/sampler"
)

// Case pairs an operation label with its unit of work.
type Case struct {
	Name string
	Op   sampler.UnitOfWork
}

const payloadSize = 64 * 1024

// Suite returns the benchmark cases in stable order. Fixtures (keys,
// payloads, trees) are generated up front so only the proof work itself is
// measured.
func Suite() ([]Case, error) {
	payload := make([]byte, payloadSize)
	if _, err := rand.Read(payload); err != nil {
		return nil, fmt.Errorf("error generating payload: %w", err)
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("error generating signing key: %w", err)
	}
	digest := sha256.Sum256(payload)
	signature, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return nil, fmt.Errorf("error signing fixture digest: %w", err)
	}

	leaves := makeLeaves(payload, 256)
	tree := NewMerkleTree(leaves)
	proofIndex := len(leaves) / 2
	fixedProof, err := tree.Prove(proofIndex)
	if err != nil {
		return nil, fmt.Errorf("error building fixture proof: %w", err)
	}

	return []Case{
		{
			Name: "commitment",
			Op: func(context.Context) (any, error) {
				commitment, opening, err := Commit(payload)
				if err != nil {
					return nil, err
				}
				if !Open(commitment, opening, payload) {
					return nil, errors.New("commitment did not open")
				}
				return commitment, nil
			},
		},
		{
			Name: "ecdsa-prove",
			Op: func(context.Context) (any, error) {
				return ecdsa.SignASN1(rand.Reader, key, digest[:])
			},
		},
		{
			Name: "ecdsa-verify",
			Op: func(context.Context) (any, error) {
				if !ecdsa.VerifyASN1(&key.PublicKey, digest[:], signature) {
					return nil, errors.New("signature did not verify")
				}
				return true, nil
			},
		},
		{
			Name: "merkle-proof",
			Op: func(context.Context) (any, error) {
				return tree.Prove(proofIndex)
			},
		},
		{
			Name: "merkle-verify",
			Op: func(context.Context) (any, error) {
				if !VerifyMerkleProof(tree.Root(), leaves[proofIndex], fixedProof) {
					return nil, errors.New("merkle proof did not verify")
				}
				return true, nil
			},
		},
	}, nil
}

func makeLeaves(payload []byte, count int) [][]byte {
	leaves := make([][]byte, count)
	chunk := len(payload) / count
	if chunk == 0 {
		chunk = 1
	}
	for i := range leaves {
		start := (i * chunk) % len(payload)
		end := start + chunk
		if end > len(payload) {
			end = len(payload)
		}
		leaves[i] = payload[start:end]
	}
	return leaves
}
