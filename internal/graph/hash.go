package graph

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainGraph is the domain prefix for graph content hashes. The version
// suffix enables future algorithm migration.
const DomainGraph = "cee/graph/v1"

// ContentHash computes the domain-separated SHA-256 hash of a graph's
// canonical JSON. Two graphs with identical structure hash identically
// regardless of node/edge insertion order once finalized.
//
// Format: SHA256(domain + 0x00 + canonicalJSON), hex-encoded. The null byte
// separator prevents domain/data boundary ambiguity.
func ContentHash(g *Graph) (string, error) {
	data, err := MarshalCanonical(g)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(DomainGraph))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
