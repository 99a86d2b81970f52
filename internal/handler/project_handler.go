package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type ProjectHandler struct {
	projectService    service.ProjectService
	membershipService service.MembershipService
}

func NewProjectHandler(projectService service.ProjectService, membershipService service.MembershipService) *ProjectHandler {
	return &ProjectHandler{
		projectService:    projectService,
		membershipService: membershipService,
	}
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	project, err := h.projectService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return middleware.BadRequest("One or more referenced users do not exist")
		}
		return validationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	tech := c.Query("tech")

	projects, err := h.projectService.List(c.Context(), status, tech)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	project, err := h.projectService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(project)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	var input domain.UpdateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err = h.projectService.Update(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, service.ErrNoValidFields):
			return middleware.BadRequest("No valid fields to update")
		case errors.Is(err, service.ErrUserNotFound):
			return middleware.BadRequest("One or more referenced users do not exist")
		default:
			return validationError(err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Project updated successfully",
	})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}

// MyProjects lists projects where the authenticated user is on the roster.
func (h *ProjectHandler) MyProjects(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	projects, err := h.projectService.ListByMember(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

func (h *ProjectHandler) ExpressInterest(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	err = h.membershipService.ExpressInterest(c.Context(), id, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, service.ErrAlreadyTeamMember):
			return middleware.BadRequest("You are already a member of this project")
		case errors.Is(err, service.ErrAlreadyInterested):
			return middleware.BadRequest("You have already expressed interest in this project")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Interest registered successfully",
	})
}

func (h *ProjectHandler) WithdrawInterest(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	userID, err := parseObjectID(c, "userId", "user")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}
	// Withdrawal is self-service; managers remove candidates via reject.
	if userID != user.ID {
		return middleware.Forbidden("You can only withdraw your own interest")
	}

	err = h.membershipService.WithdrawInterest(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrInterestNotFound) {
			return middleware.NotFound("You have not expressed interest in this project")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Interest withdrawn successfully",
	})
}

func (h *ProjectHandler) ListInterested(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	interested, err := h.membershipService.ListInterested(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(interested)
}

func (h *ProjectHandler) AddTeamMember(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	var input struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	err = h.membershipService.AddTeamMember(c.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, service.ErrUserNotFound):
			return middleware.NotFound("User not found")
		case errors.Is(err, service.ErrAlreadyTeamMember):
			return middleware.BadRequest("User is already a member of this project")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Team member added successfully",
	})
}

func (h *ProjectHandler) AcceptInterest(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	userID, err := parseObjectID(c, "userId", "user")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	err = h.membershipService.Accept(c.Context(), user, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, service.ErrNotProjectManager):
			return middleware.Forbidden("Only the project manager can accept interest requests")
		case errors.Is(err, service.ErrInterestNotFound):
			return middleware.NotFound("User has not expressed interest in this project")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User added to the project team",
	})
}

func (h *ProjectHandler) RejectInterest(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	userID, err := parseObjectID(c, "userId", "user")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	err = h.membershipService.Reject(c.Context(), user, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return middleware.NotFound("Project not found")
		case errors.Is(err, service.ErrNotProjectManager):
			return middleware.Forbidden("Only the project manager can reject interest requests")
		case errors.Is(err, service.ErrInterestNotFound):
			return middleware.NotFound("User has not expressed interest in this project")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Interest request rejected",
	})
}
