package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/handler"
	"projecthub/internal/middleware"
	"projecthub/internal/mocks"
	"projecthub/internal/pkg/keylock"
	"projecthub/internal/service"
)

// interestApp wires the interest routes with a real membership service over
// mocked repositories, so tests exercise the full handler → service →
// error-envelope path.
func interestApp(user *domain.User, projectRepo *mocks.ProjectRepository) *fiber.App {
	membershipSvc := service.NewMembershipService(projectRepo, new(mocks.UserRepository), new(mocks.NotificationService), keylock.New())
	h := handler.NewProjectHandler(nil, membershipSvc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserContextKey, user)
		return c.Next()
	})
	app.Post("/projects/:id/interested", h.ExpressInterest)
	app.Delete("/projects/:id/interested/:userId", h.WithdrawInterest)
	return app
}

func decodeError(t *testing.T, resp *http.Response) middleware.ErrorResponse {
	t.Helper()
	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestProjectHandler_ExpressInterest_DuplicateIsBadRequest(t *testing.T) {
	projectID := primitive.NewObjectID()
	user := &domain.User{ID: primitive.NewObjectID(), Email: "dev@example.com", Name: "Dev", Role: "employee"}

	mockProjectRepo := new(mocks.ProjectRepository)
	mockProjectRepo.On("GetByID", mock.Anything, projectID).Return(&domain.Project{
		ID:              projectID,
		InterestedUsers: []domain.MemberSnapshot{user.Snapshot()},
	}, nil).Once()

	app := interestApp(user, mockProjectRepo)

	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.Hex()+"/interested", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Duplicate entries are 400s, never 409.
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Code)
}

func TestProjectHandler_ExpressInterest_ExistingMemberIsBadRequest(t *testing.T) {
	projectID := primitive.NewObjectID()
	user := &domain.User{ID: primitive.NewObjectID(), Email: "dev@example.com", Name: "Dev", Role: "employee"}

	mockProjectRepo := new(mocks.ProjectRepository)
	mockProjectRepo.On("GetByID", mock.Anything, projectID).Return(&domain.Project{
		ID:          projectID,
		TeamMembers: []domain.MemberSnapshot{user.Snapshot()},
	}, nil).Once()

	app := interestApp(user, mockProjectRepo)

	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.Hex()+"/interested", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjectHandler_WithdrawInterest(t *testing.T) {
	projectID := primitive.NewObjectID()
	user := &domain.User{ID: primitive.NewObjectID(), Email: "dev@example.com", Name: "Dev", Role: "employee"}

	t.Run("Own Interest", func(t *testing.T) {
		mockProjectRepo := new(mocks.ProjectRepository)
		mockProjectRepo.On("RemoveInterested", mock.Anything, projectID, user.ID).Return(int64(1), nil).Once()

		app := interestApp(user, mockProjectRepo)

		req := httptest.NewRequest(http.MethodDelete, "/projects/"+projectID.Hex()+"/interested/"+user.ID.Hex(), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockProjectRepo.AssertExpectations(t)
	})

	t.Run("Someone Else's Interest Is Forbidden", func(t *testing.T) {
		mockProjectRepo := new(mocks.ProjectRepository)
		app := interestApp(user, mockProjectRepo)

		otherID := primitive.NewObjectID()
		req := httptest.NewRequest(http.MethodDelete, "/projects/"+projectID.Hex()+"/interested/"+otherID.Hex(), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
		mockProjectRepo.AssertNotCalled(t, "RemoveInterested", mock.Anything, mock.Anything, mock.Anything)
	})
}
