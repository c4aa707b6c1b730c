package storage

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBlobProofStorage_SaveAndOpen(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := newBlobProofStorage(bucket, discardLogger())
	store.now = func() time.Time { return time.Unix(1700000000, 0) }
	orderID := uuid.MustParse("8d7a3f5e-1b0c-4c1e-9d55-2f0a8f1c2b3d")
	payload := []byte("fake-png-bytes")
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	stored, err := store.Save(context.Background(), orderID, dataURL)
	require.NoError(t, err)
	assert.Equal(t, "proofs/8d7a3f5e-1b0c-4c1e-9d55-2f0a8f1c2b3d/1700000000.png", stored.Key)
	assert.Equal(t, "image/png", stored.ContentType)

	reader, contentType, err := store.Open(context.Background(), stored.Key)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "image/png", contentType)
}

func TestBlobProofStorage_OpenMissing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, _, err := newBlobProofStorage(bucket, discardLogger()).Open(context.Background(), "proofs/missing.png")
	assert.ErrorIs(t, err, domainerrors.ErrPaymentProofNotFound)
}

func TestBlobProofStorage_SaveRejectsMalformed(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	store := newBlobProofStorage(bucket, discardLogger())
	for _, proof := range []string{
		"https://example.com/proof.png",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,***",
	} {
		_, err := store.Save(context.Background(), uuid.New(), proof)
		require.Error(t, err, proof)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr, proof)
		assert.Equal(t, "PAYMENT_PROOF_INVALID", appErr.ErrorCode())
	}
}

func TestBlobProofStorage_Disabled(t *testing.T) {
	store := &blobProofStorage{now: time.Now}

	assert.False(t, store.Enabled())
	_, err := store.Save(context.Background(), uuid.New(), "data:image/png;base64,AAAA")
	assert.Error(t, err)
}

func TestBlobProofStorage_Delete(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	ctx := context.Background()
	store := newBlobProofStorage(bucket, discardLogger())
	stored, err := store.Save(ctx, uuid.New(), "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("png")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, stored.Key))
	_, _, err = store.Open(ctx, stored.Key)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentProofNotFound)

	// Deleting twice is harmless.
	assert.NoError(t, store.Delete(ctx, stored.Key))
	assert.NoError(t, (&blobProofStorage{now: time.Now}).Delete(ctx, stored.Key))
}
