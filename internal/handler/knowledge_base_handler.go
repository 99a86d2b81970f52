package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type KnowledgeBaseHandler struct {
	kbService service.KnowledgeBaseService
}

func NewKnowledgeBaseHandler(kbService service.KnowledgeBaseService) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{kbService: kbService}
}

// Create accepts either a multipart upload (file item) or a JSON body
// (link item), dispatching on the request content type.
func (h *KnowledgeBaseHandler) Create(c *fiber.Ctx) error {
	projectID, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.createFile(c, projectID, user)
	}
	return h.createLink(c, projectID, user)
}

func (h *KnowledgeBaseHandler) createFile(c *fiber.Ctx, projectID primitive.ObjectID, user *domain.User) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read uploaded file")
	}
	defer file.Close()

	item, err := h.kbService.CreateFile(c.Context(), projectID, user, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) {
			return middleware.BadRequest("File type not allowed")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *KnowledgeBaseHandler) createLink(c *fiber.Ctx, projectID primitive.ObjectID, user *domain.User) error {
	var input domain.CreateLinkInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	item, err := h.kbService.CreateLink(c.Context(), projectID, user, input)
	if err != nil {
		return validationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *KnowledgeBaseHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	items, err := h.kbService.ListByProject(c.Context(), projectID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *KnowledgeBaseHandler) Update(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "knowledge base item")
	if err != nil {
		return err
	}

	var input domain.UpdateKnowledgeBaseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err = h.kbService.Update(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			return middleware.NotFound("Knowledge base item not found")
		case errors.Is(err, service.ErrNoValidFields):
			return middleware.BadRequest("No valid fields to update")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Knowledge base item updated successfully",
	})
}

// ServeUpload redirects to the public object URL; the bucket itself is
// readable, so the server never proxies file bytes.
func (h *KnowledgeBaseHandler) ServeUpload(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return middleware.BadRequest("No file name provided")
	}
	return c.Redirect(h.kbService.ObjectURL("knowledge-base/"+name), fiber.StatusFound)
}

func (h *KnowledgeBaseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "knowledge base item")
	if err != nil {
		return err
	}

	if err := h.kbService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			return middleware.NotFound("Knowledge base item not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Knowledge base item deleted successfully",
	})
}
