package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khen08/todoapp/internal/auth/domain"
	"github.com/khen08/todoapp/internal/auth/dto"
	"github.com/khen08/todoapp/internal/auth/service"
	"github.com/khen08/todoapp/internal/mocks"
	"github.com/khen08/todoapp/pkg/constant"
)

func adminToken(mockTokenService *mocks.MockTokenGenerator, token string) {
	mockTokenService.EXPECT().VerifyAccessToken(token).Return(&service.JWTCustomClaims{
		UserID: "admin-1",
		Role:   constant.RoleAdmin,
	}, nil)
}

func adminRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")
	return req
}

func TestCreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, mockTokenService := newTestApp(t, ctrl)

	t.Run("success", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "newbie").Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		req := adminRequest(t, http.MethodPost, "/api/v1/users", dto.CreateUserInput{
			Name: "New User", Username: "newbie", Password: "password123",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("duplicate username", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "taken").
			Return(&domain.User{ID: "other", Username: "taken"}, nil)

		req := adminRequest(t, http.MethodPost, "/api/v1/users", dto.CreateUserInput{
			Username: "taken", Password: "password123",
		})
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("missing password", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")

		req := adminRequest(t, http.MethodPost, "/api/v1/users", dto.CreateUserInput{Username: "nobody"})
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, mockTokenService := newTestApp(t, ctrl)

	t.Run("success", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")
		existing := &domain.User{ID: "user-123", Name: "Old", Username: "tester", Role: constant.RoleUser}
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-123").Return(existing, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		name := "Renamed"
		req := adminRequest(t, http.MethodPatch, "/api/v1/users/user-123", dto.UpdateUserInput{Name: &name})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")
		mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		req := adminRequest(t, http.MethodPatch, "/api/v1/users/missing", dto.UpdateUserInput{})
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, mockTokenService := newTestApp(t, ctrl)

	t.Run("success", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")
		mockRepo.EXPECT().GetByID(gomock.Any(), "user-123").Return(&domain.User{ID: "user-123"}, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), "user-123").Return(nil)

		req := adminRequest(t, http.MethodDelete, "/api/v1/users/user-123", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		adminToken(mockTokenService, "admin-token")
		mockRepo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		req := adminRequest(t, http.MethodDelete, "/api/v1/users/missing", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetAllUsers_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app, mockRepo, mockTokenService := newTestApp(t, ctrl)

	adminToken(mockTokenService, "admin-token")
	mockRepo.EXPECT().
		List(gomock.Any(), domain.UserFilter{
			Role:     constant.RoleUser,
			OrderBy:  "created_at",
			Order:    "desc",
			Page:     2,
			PageSize: 10,
		}).
		Return([]domain.User{{ID: "user-1", Username: "alice"}}, 11, nil)

	req := adminRequest(t, http.MethodGet,
		"/api/v1/users?role=USER&order_by=created_at&order=desc&page=2&page_size=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.UserListOutput
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 11, out.Total)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "alice", out.Users[0].Username)
}
