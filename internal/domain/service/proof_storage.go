package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// StoredProof describes a payment proof kept outside the order row.
type StoredProof struct {
	Key         string
	ContentType string
}

// ProofStorage keeps decoded payment proof files.
type ProofStorage interface {
	// Enabled reports whether proofs are stored in a bucket instead of inline.
	Enabled() bool

	// Save decodes a data URL proof and writes it under the order's prefix.
	Save(ctx context.Context, orderID uuid.UUID, dataURL string) (*StoredProof, error)

	// Delete removes a stored proof. A missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Open returns a reader for a stored proof and its content type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
