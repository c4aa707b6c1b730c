package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContactHandler(t *testing.T) (*ContactHandler, *mockUC.MockContactUsecase, *mockUC.MockNewsletterUsecase) {
	contactUC := mockUC.NewMockContactUsecase(t)
	newsletterUC := mockUC.NewMockNewsletterUsecase(t)

	return NewContactHandler(ContactHandlerParams{
		ContactUC:    contactUC,
		NewsletterUC: newsletterUC,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), contactUC, newsletterUC
}

func TestContactHandler_SubmitContact(t *testing.T) {
	h, contactUC, _ := newContactHandler(t)

	c, rec := newContext(t, http.MethodPost, "/contact", map[string]string{
		"firstName": "Budi", "email": "budi@example.com", "subject": "Grosir", "message": "Ada harga grosir?",
	})

	contactUC.On("Submit", mock.Anything, &usecase.SubmitContactInput{
		FirstName: "Budi", Email: "budi@example.com", Subject: "Grosir", Message: "Ada harga grosir?",
	}).Return(&entity.ContactMessage{
		ID: uuid.New(), FirstName: "Budi", Email: "budi@example.com", Subject: "Grosir",
		Message: "Ada harga grosir?", Status: entity.ContactStatusNew,
	}, nil).Once()

	require.NoError(t, h.SubmitContact(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var data ContactResponse
	decodeData(t, rec, &data)
	assert.Equal(t, "new", data.Status)
}

func TestContactHandler_UpdateContactStatus(t *testing.T) {
	h, contactUC, _ := newContactHandler(t)
	id := uuid.New()

	c, _ := newContext(t, http.MethodPut, "/admin/contacts/"+id.String(), map[string]string{"status": "archived"})
	asAdmin(withID(c, id.String()))

	contactUC.On("UpdateStatus", mock.Anything, id, "archived").Return(nil, domainerrors.ErrInvalidContactStatus).Once()

	assertErrorCode(t, h.UpdateContactStatus(c), "INVALID_CONTACT_STATUS")
}

func TestContactHandler_ListContacts(t *testing.T) {
	h, contactUC, _ := newContactHandler(t)

	c, rec := newContext(t, http.MethodGet, "/admin/contacts?status=new", nil)
	asAdmin(c)

	contactUC.On("List", mock.Anything, &usecase.ListContactsInput{Status: "new"}).Return(&usecase.ContactPage{
		Messages:   []*entity.ContactMessage{},
		Pagination: usecase.NewPagination(usecase.PageRequest{Page: 1, Limit: 20}, 0),
	}, nil).Once()

	require.NoError(t, h.ListContacts(c))

	var data []ContactResponse
	envelope := decodeData(t, rec, &data)
	assert.Empty(t, data)
	require.NotNil(t, envelope.Pagination)
	assert.Zero(t, envelope.Pagination.Pages)
}

func TestContactHandler_Subscribe(t *testing.T) {
	subscribedAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		reactivated bool
		wantStatus  int
		wantMessage string
	}{
		{name: "new signup", wantStatus: http.StatusCreated, wantMessage: "Subscribed successfully"},
		{name: "reactivated signup", reactivated: true, wantStatus: http.StatusOK, wantMessage: "Subscription reactivated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, newsletterUC := newContactHandler(t)

			c, rec := newContext(t, http.MethodPost, "/newsletter/subscribe", map[string]string{"email": "ani@example.com"})

			newsletterUC.On("Subscribe", mock.Anything, "ani@example.com").Return(&usecase.SubscribeOutput{
				Subscriber:  &entity.NewsletterSubscriber{Email: "ani@example.com", IsActive: true, SubscribedAt: subscribedAt},
				Reactivated: tt.reactivated,
			}, nil).Once()

			require.NoError(t, h.Subscribe(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var data SubscriberResponse
			envelope := decodeData(t, rec, &data)
			assert.Equal(t, tt.wantMessage, envelope.Message)
			assert.True(t, data.IsActive)
			assert.True(t, subscribedAt.Equal(data.SubscribedAt))
		})
	}

	t.Run("already subscribed", func(t *testing.T) {
		h, _, newsletterUC := newContactHandler(t)

		c, _ := newContext(t, http.MethodPost, "/newsletter/subscribe", map[string]string{"email": "ani@example.com"})
		newsletterUC.On("Subscribe", mock.Anything, "ani@example.com").Return(nil, domainerrors.ErrAlreadySubscribed).Once()

		assertErrorCode(t, h.Subscribe(c), "ALREADY_SUBSCRIBED")
	})
}
