package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"projecthub/internal/domain"
	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	projectID, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.commentService.Create(c.Context(), projectID, user, input)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return validationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := parseObjectID(c, "id", "project")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListByProject(c.Context(), projectID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	commentID, err := parseObjectID(c, "id", "comment")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err = h.commentService.Update(c.Context(), user, commentID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return middleware.NotFound("Comment not found")
		case errors.Is(err, service.ErrNotCommentAuthor):
			return middleware.Forbidden("You can only edit your own comments")
		default:
			return validationError(err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment updated successfully",
	})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	commentID, err := parseObjectID(c, "id", "comment")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	err = h.commentService.Delete(c.Context(), user, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return middleware.NotFound("Comment not found")
		case errors.Is(err, service.ErrCannotDeleteOthers):
			return middleware.Forbidden("You do not have permission to delete this comment")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}

func (h *CommentHandler) AddReply(c *fiber.Ctx) error {
	commentID, err := parseObjectID(c, "id", "comment")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	reply, err := h.commentService.AddReply(c.Context(), commentID, user, input)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			return middleware.NotFound("Comment not found")
		}
		return validationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

func (h *CommentHandler) UpdateReply(c *fiber.Ctx) error {
	commentID, err := parseObjectID(c, "id", "comment")
	if err != nil {
		return err
	}
	replyID := c.Params("replyId")

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err = h.commentService.UpdateReply(c.Context(), user, commentID, replyID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return middleware.NotFound("Comment not found")
		case errors.Is(err, service.ErrReplyNotFound):
			return middleware.NotFound("Reply not found")
		case errors.Is(err, service.ErrNotCommentAuthor):
			return middleware.Forbidden("You can only edit your own replies")
		default:
			return validationError(err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reply updated successfully",
	})
}

func (h *CommentHandler) DeleteReply(c *fiber.Ctx) error {
	commentID, err := parseObjectID(c, "id", "comment")
	if err != nil {
		return err
	}
	replyID := c.Params("replyId")

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	err = h.commentService.DeleteReply(c.Context(), user, commentID, replyID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			return middleware.NotFound("Comment not found")
		case errors.Is(err, service.ErrReplyNotFound):
			return middleware.NotFound("Reply not found")
		case errors.Is(err, service.ErrCannotDeleteOthers):
			return middleware.Forbidden("You do not have permission to delete this reply")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Reply deleted successfully",
	})
}
