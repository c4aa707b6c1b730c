package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestContactService(t *testing.T) (usecase.ContactUsecase, *mockRepo.MockContactRepository) {
	contactRepo := mockRepo.NewMockContactRepository(t)

	return NewContactService(ContactServiceParams{ContactRepo: contactRepo, Logger: newDiscardLogger()}), contactRepo
}

func validContactInput() *usecase.SubmitContactInput {
	return &usecase.SubmitContactInput{
		FirstName: "Siti",
		LastName:  "Aminah",
		Email:     "Siti@Mail.test",
		Phone:     "0812",
		Subject:   "Pesanan",
		Message:   "Kapan dikirim?",
	}
}

func TestContactService_Submit(t *testing.T) {
	srv, contactRepo := createTestContactService(t)
	ctx := context.Background()

	contactRepo.On("Create", ctx, mock.MatchedBy(func(message *entity.ContactMessage) bool {
		return message.Status == entity.ContactStatusNew && message.Email == "siti@mail.test"
	})).Return(nil)

	message, err := srv.Submit(ctx, validContactInput())

	require.NoError(t, err)
	assert.Equal(t, entity.ContactStatusNew, message.Status)
}

func TestContactService_Submit_RequiresEveryField(t *testing.T) {
	srv, _ := createTestContactService(t)
	ctx := context.Background()

	input := validContactInput()
	input.Phone = " "

	_, err := srv.Submit(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrContactFieldsRequired))
}

func TestContactService_List_StatusFilter(t *testing.T) {
	srv, contactRepo := createTestContactService(t)
	ctx := context.Background()

	contactRepo.On("List", ctx, repository.ContactFilter{
		Status: entity.ContactStatusRead,
		Page:   repository.Page{Offset: 20, Limit: 20},
	}).Return([]*entity.ContactMessage{}, int64(21), nil)

	page, err := srv.List(ctx, &usecase.ListContactsInput{Status: "READ", Page: usecase.PageRequest{Page: 2}})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Pages)

	_, err = srv.List(ctx, &usecase.ListContactsInput{Status: "archived"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidContactStatus))
}

func TestContactService_UpdateStatus(t *testing.T) {
	srv, contactRepo := createTestContactService(t)
	ctx := context.Background()
	id := uuid.New()

	contactRepo.On("UpdateStatus", ctx, id, entity.ContactStatusReplied).Return(nil)
	contactRepo.On("FindByID", ctx, id).Return(&entity.ContactMessage{ID: id, Status: entity.ContactStatusReplied}, nil)

	message, err := srv.UpdateStatus(ctx, id, "replied")
	require.NoError(t, err)
	assert.Equal(t, entity.ContactStatusReplied, message.Status)

	_, err = srv.UpdateStatus(ctx, id, "spam")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidContactStatus))

	missing := uuid.New()
	contactRepo.On("UpdateStatus", ctx, missing, entity.ContactStatusRead).Return(repository.ErrContactNotFound)
	_, err = srv.UpdateStatus(ctx, missing, "read")
	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}

func TestContactService_Delete(t *testing.T) {
	srv, contactRepo := createTestContactService(t)
	ctx := context.Background()
	id := uuid.New()

	contactRepo.On("Delete", ctx, id).Return(repository.ErrContactNotFound)

	err := srv.Delete(ctx, id)

	assert.True(t, errors.Is(err, domainerrors.ErrContactNotFound))
}
