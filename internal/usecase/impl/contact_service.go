package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultContactPageLimit = 20
	maxContactPageLimit     = 100
)

type contactService struct {
	contactRepo repository.ContactRepository
	logger      *slog.Logger
}

// ContactServiceParams holds dependencies for ContactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	Logger      *slog.Logger
}

func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	return &contactService{
		contactRepo: params.ContactRepo,
		logger:      params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit stores a contact form message with status new. Every field is required.
func (srv *contactService) Submit(ctx context.Context, input *usecase.SubmitContactInput) (*entity.ContactMessage, error) {
	message := &entity.ContactMessage{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     normalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		Status:    entity.ContactStatusNew,
	}

	for _, field := range []string{message.FirstName, message.LastName, message.Email, message.Phone, message.Subject, message.Message} {
		if field == "" {
			return nil, domainerrors.ErrContactFieldsRequired
		}
	}
	if _, err := mail.ParseAddress(message.Email); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid email address")
	}

	if err := srv.contactRepo.Create(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to store contact message")
	}

	srv.log(ctx).Info("Contact message received", slog.String("messageID", message.ID.String()))

	return message, nil
}

func (srv *contactService) List(ctx context.Context, input *usecase.ListContactsInput) (*usecase.ContactPage, error) {
	page := input.Page.Normalize(defaultContactPageLimit, maxContactPageLimit)

	filter := repository.ContactFilter{Page: page.Repository()}
	if strings.TrimSpace(input.Status) != "" {
		status, ok := entity.ParseContactStatus(input.Status)
		if !ok {
			return nil, domainerrors.ErrInvalidContactStatus
		}
		filter.Status = status
	}

	messages, total, err := srv.contactRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contact messages")
	}

	return &usecase.ContactPage{Messages: messages, Pagination: usecase.NewPagination(page, total)}, nil
}

func (srv *contactService) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (*entity.ContactMessage, error) {
	status, ok := entity.ParseContactStatus(raw)
	if !ok {
		return nil, domainerrors.ErrInvalidContactStatus
	}

	if err := srv.contactRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to update contact status")
	}

	message, err := srv.contactRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to load contact message")
	}

	return message, nil
}

func (srv *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.contactRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return domainerrors.ErrContactNotFound
		}

		return errors.Wrap(err, "failed to delete contact message")
	}

	return nil
}
