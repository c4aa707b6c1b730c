package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type newsletterService struct {
	newsletterRepo repository.NewsletterRepository
	logger         *slog.Logger
	now            func() time.Time
}

// NewsletterServiceParams holds dependencies for NewsletterService, injected by Fx.
type NewsletterServiceParams struct {
	fx.In

	NewsletterRepo repository.NewsletterRepository
	Logger         *slog.Logger
}

func NewNewsletterService(params NewsletterServiceParams) usecase.NewsletterUsecase {
	return &newsletterService{
		newsletterRepo: params.NewsletterRepo,
		logger:         params.Logger,
		now:            time.Now,
	}
}

// Subscribe adds email to the list, reactivating a previous unsubscribe.
func (srv *newsletterService) Subscribe(ctx context.Context, rawEmail string) (*usecase.SubscribeOutput, error) {
	email := normalizeEmail(rawEmail)
	if email == "" {
		return nil, domainerrors.ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid email address")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	existing, err := srv.newsletterRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return nil, domainerrors.ErrAlreadySubscribed
	case err == nil:
		existing.IsActive = true
		existing.SubscribedAt = srv.now()
		if err := srv.newsletterRepo.Update(ctx, existing); err != nil {
			return nil, errors.Wrap(err, "failed to reactivate subscriber")
		}
		logger.Info("Newsletter subscription reactivated", slog.String("subscriberID", existing.ID.String()))

		return &usecase.SubscribeOutput{Subscriber: existing, Reactivated: true}, nil
	case !errors.Is(err, repository.ErrSubscriberNotFound):
		return nil, errors.Wrap(err, "failed to find subscriber")
	}

	subscriber := &entity.NewsletterSubscriber{
		Email:        email,
		IsActive:     true,
		SubscribedAt: srv.now(),
	}
	if err := srv.newsletterRepo.Create(ctx, subscriber); err != nil {
		// A concurrent signup for the same address surfaces as a unique violation.
		if errors.Is(err, domainerrors.ErrAlreadySubscribed) {
			return nil, domainerrors.ErrAlreadySubscribed
		}

		return nil, errors.Wrap(err, "failed to create subscriber")
	}
	logger.Info("Newsletter subscription created", slog.String("subscriberID", subscriber.ID.String()))

	return &usecase.SubscribeOutput{Subscriber: subscriber}, nil
}
