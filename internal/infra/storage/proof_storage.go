// Package storage keeps payment proof files in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selectable through store.proofBucketUrl.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

const dataURLPrefix = "data:"

var proofExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

// Params defines the dependencies of NewProofStorage.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

type blobProofStorage struct {
	bucket *blob.Bucket
	logger *slog.Logger
	now    func() time.Time
}

// NewProofStorage opens the configured bucket. Without a bucket URL proofs stay inline on the order.
func NewProofStorage(params Params) (service.ProofStorage, error) {
	if params.Config.Store == nil || strings.TrimSpace(params.Config.Store.ProofBucketURL) == "" {
		params.Logger.Info("Payment proof bucket not configured, proofs are stored inline")

		return &blobProofStorage{logger: params.Logger, now: time.Now}, nil
	}

	bucket, err := blob.OpenBucket(context.Background(), params.Config.Store.ProofBucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open payment proof bucket")
	}
	params.Lc.Append(fx.StopHook(bucket.Close))
	params.Logger.Info("Payment proof bucket opened", slog.String("url", params.Config.Store.ProofBucketURL))

	return newBlobProofStorage(bucket, params.Logger), nil
}

func newBlobProofStorage(bucket *blob.Bucket, logger *slog.Logger) *blobProofStorage {
	return &blobProofStorage{bucket: bucket, logger: logger, now: time.Now}
}

func (s *blobProofStorage) Enabled() bool {
	return s.bucket != nil
}

func (s *blobProofStorage) Save(ctx context.Context, orderID uuid.UUID, dataURL string) (*service.StoredProof, error) {
	if !s.Enabled() {
		return nil, errors.New("payment proof bucket not configured")
	}

	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return nil, domainerrors.ErrPaymentProofInvalid.WithDetails(err.Error())
	}

	ext, ok := proofExtensions[contentType]
	if !ok {
		ext = "bin"
	}
	key := fmt.Sprintf("%s%s/%d.%s", entity.PaymentProofKeyPrefix, orderID, s.now().Unix(), ext)

	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return nil, errors.Wrapf(err, "failed to write payment proof %s", key)
	}
	s.logger.DebugContext(ctx, "Payment proof stored",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(data)))),
	)

	return &service.StoredProof{Key: key, ContentType: contentType}, nil
}

func (s *blobProofStorage) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return nil
	}

	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete payment proof %s", key)
	}
	s.logger.DebugContext(ctx, "Payment proof deleted", slog.String("key", key))

	return nil
}

func (s *blobProofStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !s.Enabled() {
		return nil, "", domainerrors.ErrPaymentProofNotFound
	}

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", domainerrors.ErrPaymentProofNotFound
		}

		return nil, "", errors.Wrapf(err, "failed to open payment proof %s", key)
	}

	return reader, reader.ContentType(), nil
}

// decodeDataURL splits "data:<mime>;base64,<payload>" into its MIME type and bytes.
func decodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return "", nil, errors.New("proof is not a data URL")
	}

	meta, payload, found := strings.Cut(strings.TrimPrefix(dataURL, dataURLPrefix), ",")
	if !found {
		return "", nil, errors.New("data URL has no payload")
	}

	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, errors.New("data URL is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "invalid base64 payload")
	}
	if len(data) == 0 {
		return "", nil, errors.New("data URL payload is empty")
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return contentType, data, nil
}
