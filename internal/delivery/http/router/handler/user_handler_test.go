package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	mockUC "storefront/internal/mocks/usecase"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserHandler(t *testing.T) (*UserHandler, *mockUC.MockUserUsecase, *mockUC.MockStatsUsecase) {
	userUC := mockUC.NewMockUserUsecase(t)
	statsUC := mockUC.NewMockStatsUsecase(t)

	return NewUserHandler(UserHandlerParams{
		UserUC:  userUC,
		StatsUC: statsUC,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), userUC, statsUC
}

func TestUserHandler_ListUsers(t *testing.T) {
	h, userUC, _ := newUserHandler(t)

	c, rec := newContext(t, http.MethodGet, "/admin/users?role=admin&search=siti&page=1&limit=5", nil)
	asAdmin(c)

	userUC.On("ListUsers", mock.Anything, &usecase.ListUsersInput{
		Role: "admin", Search: "siti", Page: usecase.PageRequest{Page: 1, Limit: 5},
	}).Return(&usecase.UserPage{
		Users:      []*entity.User{{ID: adminID, Name: "Siti", Role: entity.RoleAdmin, IsActive: true}},
		Pagination: usecase.NewPagination(usecase.PageRequest{Page: 1, Limit: 5}, 1),
	}, nil).Once()

	require.NoError(t, h.ListUsers(c))

	var data []UserResponse
	decodeData(t, rec, &data)
	require.Len(t, data, 1)
	assert.Equal(t, "admin", data[0].Role)
}

func TestUserHandler_UpdateUser(t *testing.T) {
	t.Run("passes the caller as actor", func(t *testing.T) {
		h, userUC, _ := newUserHandler(t)

		c, rec := newContext(t, http.MethodPut, "/admin/users/"+shopperID.String(), map[string]any{"isActive": false})
		asAdmin(withID(c, shopperID.String()))

		userUC.On("UpdateUser", mock.Anything, adminID, shopperID, mock.MatchedBy(func(input *usecase.UpdateUserInput) bool {
			return input.Name == nil && input.Role == nil && input.IsActive != nil && !*input.IsActive
		})).Return(&entity.User{ID: shopperID, Role: entity.RoleUser, IsActive: false}, nil).Once()

		require.NoError(t, h.UpdateUser(c))

		var data UserResponse
		decodeData(t, rec, &data)
		assert.False(t, data.IsActive)
	})

	t.Run("self demotion is forbidden", func(t *testing.T) {
		h, userUC, _ := newUserHandler(t)

		c, _ := newContext(t, http.MethodPut, "/admin/users/"+adminID.String(), map[string]any{"role": "user"})
		asAdmin(withID(c, adminID.String()))

		userUC.On("UpdateUser", mock.Anything, adminID, adminID, mock.Anything).
			Return(nil, domainerrors.ErrForbidden.WithDetails("admins cannot remove their own admin role")).Once()

		assertErrorCode(t, h.UpdateUser(c), "FORBIDDEN")
	})
}

func TestUserHandler_DeleteUser_WithOrders(t *testing.T) {
	h, userUC, _ := newUserHandler(t)

	c, _ := newContext(t, http.MethodDelete, "/admin/users/"+shopperID.String(), nil)
	asAdmin(withID(c, shopperID.String()))

	userUC.On("DeleteUser", mock.Anything, adminID, shopperID).
		Return(domainerrors.ErrConflict.WithDetails("user has orders and can only be deactivated")).Once()

	assertErrorCode(t, h.DeleteUser(c), "CONFLICT")
}

func TestUserHandler_DashboardStats(t *testing.T) {
	h, _, statsUC := newUserHandler(t)
	productID := uuid.New()

	c, rec := newContext(t, http.MethodGet, "/admin/stats", nil)
	asAdmin(c)

	statsUC.On("DashboardStats", mock.Anything).Return(&entity.DashboardStats{
		Overview:       entity.DashboardOverview{TotalOrders: 12, PendingOrders: 3, CompletedOrders: 7, TotalRevenue: 840000},
		TopProducts:    []entity.TopProduct{{ProductID: productID, Name: "Kopi", TotalSold: 20, Revenue: 500000}},
		RevenueByMonth: []entity.MonthlyRevenue{{Year: 2024, Month: 5, Revenue: 840000, Orders: 7}},
		OrdersByStatus: []entity.StatusCount{
			{Status: entity.OrderStatusPending, Count: 3},
			{Status: entity.OrderStatusCompleted, Count: 7},
		},
	}, nil).Once()

	require.NoError(t, h.DashboardStats(c))

	var data DashboardStatsResponse
	decodeData(t, rec, &data)
	assert.Equal(t, int64(12), data.Overview.TotalOrders)
	assert.Equal(t, int64(840000), data.Overview.TotalRevenue)
	assert.Empty(t, data.RecentOrders)
	require.Len(t, data.TopProducts, 1)
	assert.Equal(t, productID, data.TopProducts[0].ProductID)
	assert.Equal(t, []MonthlyRevenueResponse{{Year: 2024, Month: 5, Revenue: 840000, Orders: 7}}, data.RevenueByMonth)
	assert.Equal(t, []StatusCountResponse{
		{Status: "pending", Label: "Pending", Count: 3},
		{Status: "completed", Label: "Completed", Count: 7},
	}, data.OrdersByStatus)
}
