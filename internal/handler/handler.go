package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type Handlers struct {
	Auth          *AuthHandler
	User          *UserHandler
	Project       *ProjectHandler
	Comment       *CommentHandler
	Notification  *NotificationHandler
	KnowledgeBase *KnowledgeBaseHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:          NewAuthHandler(services.Auth),
		User:          NewUserHandler(services.User),
		Project:       NewProjectHandler(services.Project, services.Membership),
		Comment:       NewCommentHandler(services.Comment),
		Notification:  NewNotificationHandler(services.Notification),
		KnowledgeBase: NewKnowledgeBaseHandler(services.KnowledgeBase),
	}
}

func parseObjectID(c *fiber.Ctx, param, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, middleware.BadRequest("Invalid " + what + " ID")
	}
	return id, nil
}

// validationError converts a service ValidationError into the middleware's
// field-error envelope; other errors pass through unchanged.
func validationError(err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return &middleware.FieldErrors{Fields: vErr.Fields}
	}
	return err
}
