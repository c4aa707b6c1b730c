package impl

import (
	"context"
	"log/slog"
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
	defaultUserPageLimit = 20
	maxUserPageLimit     = 100
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.UserPage, error) {
	page := input.Page.Normalize(defaultUserPageLimit, maxUserPageLimit)

	filter := repository.UserFilter{
		Search: strings.TrimSpace(input.Search),
		Page:   page.Repository(),
	}
	if raw := strings.TrimSpace(input.Role); raw != "" {
		role := entity.Role(strings.ToLower(raw))
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role: " + raw)
		}
		filter.Role = role
	}

	users, total, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &usecase.UserPage{Users: users, Pagination: usecase.NewPagination(page, total)}, nil
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateUser changes name, role or activation. Admins cannot demote or deactivate themselves.
func (srv *userService) UpdateUser(ctx context.Context, actorID, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
			}
			user.Name = name
		}
		if input.Role != nil {
			role := entity.Role(strings.ToLower(strings.TrimSpace(*input.Role)))
			if !role.IsValid() {
				return domainerrors.ErrValidationFailed.WithDetails("unknown role: " + *input.Role)
			}
			if id == actorID && role != entity.RoleAdmin {
				return domainerrors.ErrForbidden.WithDetails("admins cannot remove their own admin role")
			}
			user.Role = role
		}
		if input.IsActive != nil {
			if id == actorID && !*input.IsActive {
				return domainerrors.ErrForbidden.WithDetails("admins cannot deactivate themselves")
			}
			user.IsActive = *input.IsActive
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		if !user.IsActive {
			// Deactivated accounts lose their sessions immediately.
			if err := repoFactory.NewRefreshTokenRepository().DeleteRefreshTokensByUserID(ctx, user.ID); err != nil {
				return errors.Wrap(err, "failed to revoke sessions")
			}
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated",
		slog.String("userID", id.String()),
		slog.String("actorID", actorID.String()),
		slog.String("role", updated.Role.String()),
		slog.Bool("isActive", updated.IsActive),
	)

	return updated, nil
}

func (srv *userService) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if id == actorID {
		return domainerrors.ErrForbidden.WithDetails("admins cannot delete themselves")
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return domainerrors.ErrUserNotFound
		case errors.Is(err, repository.ErrUserHasOrders):
			return domainerrors.ErrConflict.WithDetails("user has orders and can only be deactivated")
		default:
			return errors.Wrap(err, "failed to delete user")
		}
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id.String()), slog.String("actorID", actorID.String()))

	return nil
}
