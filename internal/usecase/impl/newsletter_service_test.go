package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestNewsletterService(t *testing.T) (*newsletterService, *mockRepo.MockNewsletterRepository) {
	newsletterRepo := mockRepo.NewMockNewsletterRepository(t)
	srv := NewNewsletterService(NewsletterServiceParams{NewsletterRepo: newsletterRepo, Logger: newDiscardLogger()}).(*newsletterService)
	srv.now = func() time.Time { return fixedNow }

	return srv, newsletterRepo
}

func TestNewsletterService_Subscribe_New(t *testing.T) {
	srv, newsletterRepo := createTestNewsletterService(t)
	ctx := context.Background()

	newsletterRepo.On("FindByEmail", ctx, "budi@mail.test").Return(nil, repository.ErrSubscriberNotFound)
	newsletterRepo.On("Create", ctx, mock.MatchedBy(func(s *entity.NewsletterSubscriber) bool {
		return s.IsActive && s.SubscribedAt.Equal(fixedNow)
	})).Return(nil)

	output, err := srv.Subscribe(ctx, " Budi@Mail.test ")

	require.NoError(t, err)
	assert.False(t, output.Reactivated)
	assert.Equal(t, "budi@mail.test", output.Subscriber.Email)
}

func TestNewsletterService_Subscribe_AlreadyActive(t *testing.T) {
	srv, newsletterRepo := createTestNewsletterService(t)
	ctx := context.Background()

	newsletterRepo.On("FindByEmail", ctx, "budi@mail.test").
		Return(&entity.NewsletterSubscriber{ID: uuid.New(), Email: "budi@mail.test", IsActive: true}, nil)

	_, err := srv.Subscribe(ctx, "budi@mail.test")

	assert.True(t, errors.Is(err, domainerrors.ErrAlreadySubscribed))
}

func TestNewsletterService_Subscribe_Reactivates(t *testing.T) {
	srv, newsletterRepo := createTestNewsletterService(t)
	ctx := context.Background()
	subscriber := &entity.NewsletterSubscriber{ID: uuid.New(), Email: "budi@mail.test", IsActive: false}

	newsletterRepo.On("FindByEmail", ctx, "budi@mail.test").Return(subscriber, nil)
	newsletterRepo.On("Update", ctx, subscriber).Return(nil)

	output, err := srv.Subscribe(ctx, "budi@mail.test")

	require.NoError(t, err)
	assert.True(t, output.Reactivated)
	assert.True(t, output.Subscriber.IsActive)
	assert.Equal(t, fixedNow, output.Subscriber.SubscribedAt)
}

func TestNewsletterService_Subscribe_Validation(t *testing.T) {
	srv, _ := createTestNewsletterService(t)
	ctx := context.Background()

	_, err := srv.Subscribe(ctx, "  ")
	assert.True(t, errors.Is(err, domainerrors.ErrEmailRequired))

	_, err = srv.Subscribe(ctx, "nope")
	assertErrorCode(t, err, "VALIDATION_FAILED")
}
