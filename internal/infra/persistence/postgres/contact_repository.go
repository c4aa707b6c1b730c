package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (repo *contactRepository) Create(ctx context.Context, message *entity.ContactMessage) error {
	messageM := &model.ContactMessageModel{
		ID:        message.ID,
		FirstName: message.FirstName,
		LastName:  message.LastName,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Message:   message.Message,
		Status:    string(message.Status),
	}

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt
	message.UpdatedAt = messageM.UpdatedAt

	return nil
}

func (repo *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ContactMessage, error) {
	var messageM model.ContactMessageModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&messageM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact message")
	}

	return toContactDomain(&messageM), nil
}

func (repo *contactRepository) List(ctx context.Context, filter repository.ContactFilter) ([]*entity.ContactMessage, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ContactMessageModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count contact messages")
	}

	var rows []model.ContactMessageModel
	if err := query.Scopes(paginate(filter.Page)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list contact messages")
	}

	messages := make([]*entity.ContactMessage, 0, len(rows))
	for i := range rows {
		messages = append(messages, toContactDomain(&rows[i]))
	}

	return messages, total, nil
}

func (repo *contactRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ContactStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.ContactMessageModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update contact message")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

func (repo *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactMessageModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete contact message")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

func toContactDomain(data *model.ContactMessageModel) *entity.ContactMessage {
	return &entity.ContactMessage{
		ID:        data.ID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Subject:   data.Subject,
		Message:   data.Message,
		Status:    entity.ContactStatus(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
