package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/mocks"
	"projecthub/internal/service"
)

func newCommentService(commentRepo *mocks.CommentRepository, projectRepo *mocks.ProjectRepository, notifSvc *mocks.NotificationService) service.CommentService {
	// Redis nil: caching is skipped entirely.
	return service.NewCommentService(commentRepo, projectRepo, notifSvc, nil)
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	projectID := primitive.NewObjectID()
	author := &domain.User{
		ID:    primitive.NewObjectID(),
		Email: "dev@example.com",
		Name:  "Dev",
		Role:  "employee",
	}
	input := domain.CommentInput{Text: "Looks good to me"}

	t.Run("Success", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		mockProjectRepo := new(mocks.ProjectRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := newCommentService(mockCommentRepo, mockProjectRepo, mockNotifSvc)

		project := &domain.Project{ID: projectID, Title: "Portal"}
		mockProjectRepo.On("GetByID", ctx, projectID).Return(project, nil).Once()
		mockCommentRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.ProjectID == projectID && c.UserID == author.ID && c.Text == input.Text
		})).Return(nil).Once()
		mockNotifSvc.On("NotifyProjectComment", ctx, project, mock.AnythingOfType("*domain.Comment")).Once()

		comment, err := svc.Create(ctx, projectID, author, input)

		assert.NoError(t, err)
		assert.NotNil(t, comment)
		assert.Equal(t, author.Name, comment.UserName)
		mockCommentRepo.AssertExpectations(t)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Project Not Found", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		mockProjectRepo := new(mocks.ProjectRepository)
		svc := newCommentService(mockCommentRepo, mockProjectRepo, new(mocks.NotificationService))

		mockProjectRepo.On("GetByID", ctx, projectID).Return(nil, nil).Once()

		comment, err := svc.Create(ctx, projectID, author, input)

		assert.Nil(t, comment)
		assert.ErrorIs(t, err, service.ErrProjectNotFound)
	})

	t.Run("Empty Text", func(t *testing.T) {
		svc := newCommentService(new(mocks.CommentRepository), new(mocks.ProjectRepository), new(mocks.NotificationService))

		comment, err := svc.Create(ctx, projectID, author, domain.CommentInput{Text: "   "})

		assert.Nil(t, comment)
		var vErr *service.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestCommentService_Update(t *testing.T) {
	ctx := context.Background()
	commentID := primitive.NewObjectID()
	author := &domain.User{ID: primitive.NewObjectID(), Role: "employee"}
	other := &domain.User{ID: primitive.NewObjectID(), Role: "admin"}

	existing := &domain.Comment{
		ID:        commentID,
		ProjectID: primitive.NewObjectID(),
		UserID:    author.ID,
		Text:      "Original",
	}

	t.Run("Author Edits Own Comment", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		mockCommentRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()
		mockCommentRepo.On("UpdateText", ctx, commentID, "Updated").Return(int64(1), nil).Once()

		err := svc.Update(ctx, author, commentID, domain.CommentInput{Text: "Updated"})

		assert.NoError(t, err)
		mockCommentRepo.AssertExpectations(t)
	})

	t.Run("Admin May Not Edit Someone Else's Comment", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		mockCommentRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()

		err := svc.Update(ctx, other, commentID, domain.CommentInput{Text: "Hijacked"})

		assert.ErrorIs(t, err, service.ErrNotCommentAuthor)
		mockCommentRepo.AssertNotCalled(t, "UpdateText", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	commentID := primitive.NewObjectID()
	author := &domain.User{ID: primitive.NewObjectID(), Role: "employee"}

	existing := &domain.Comment{
		ID:        commentID,
		ProjectID: primitive.NewObjectID(),
		UserID:    author.ID,
	}

	t.Run("Author Deletes Own Comment", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		mockCommentRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()
		mockCommentRepo.On("Delete", ctx, commentID).Return(int64(1), nil).Once()

		assert.NoError(t, svc.Delete(ctx, author, commentID))
	})

	t.Run("Admin Deletes Someone Else's Comment", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		admin := &domain.User{ID: primitive.NewObjectID(), Role: "admin"}
		mockCommentRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()
		mockCommentRepo.On("Delete", ctx, commentID).Return(int64(1), nil).Once()

		assert.NoError(t, svc.Delete(ctx, admin, commentID))
	})

	t.Run("Employee May Not Delete Someone Else's Comment", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		stranger := &domain.User{ID: primitive.NewObjectID(), Role: "employee"}
		mockCommentRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()

		err := svc.Delete(ctx, stranger, commentID)

		assert.ErrorIs(t, err, service.ErrCannotDeleteOthers)
		mockCommentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCommentService_Replies(t *testing.T) {
	ctx := context.Background()
	commentID := primitive.NewObjectID()
	author := &domain.User{ID: primitive.NewObjectID(), Name: "Dev", Email: "dev@example.com", Role: "employee"}
	replier := &domain.User{ID: primitive.NewObjectID(), Name: "PM", Email: "pm@example.com", Role: "project_manager"}

	parent := &domain.Comment{
		ID:        commentID,
		ProjectID: primitive.NewObjectID(),
		UserID:    author.ID,
		UserName:  author.Name,
		Text:      "Anyone seen this failure?",
	}

	t.Run("Add Reply Notifies The Comment Author", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), mockNotifSvc)

		mockCommentRepo.On("GetByID", ctx, commentID).Return(parent, nil).Once()
		mockCommentRepo.On("AddReply", ctx, commentID, mock.MatchedBy(func(r domain.Reply) bool {
			return r.ID != "" && r.UserID == replier.ID && r.Text == "Yes, rebuilding now"
		})).Return(int64(1), nil).Once()
		mockNotifSvc.On("NotifyCommentReply", ctx, parent, mock.AnythingOfType("*domain.Reply")).Once()

		reply, err := svc.AddReply(ctx, commentID, replier, domain.CommentInput{Text: "Yes, rebuilding now"})

		assert.NoError(t, err)
		assert.NotNil(t, reply)
		assert.NotEmpty(t, reply.ID)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Update Reply Is Author Only", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		withReply := *parent
		withReply.Replies = []domain.Reply{{ID: "r1", UserID: replier.ID, Text: "First"}}
		mockCommentRepo.On("GetByID", ctx, commentID).Return(&withReply, nil).Once()

		err := svc.UpdateReply(ctx, author, commentID, "r1", domain.CommentInput{Text: "Second"})

		assert.ErrorIs(t, err, service.ErrNotCommentAuthor)
	})

	t.Run("Delete Missing Reply", func(t *testing.T) {
		mockCommentRepo := new(mocks.CommentRepository)
		svc := newCommentService(mockCommentRepo, new(mocks.ProjectRepository), new(mocks.NotificationService))

		mockCommentRepo.On("GetByID", ctx, commentID).Return(parent, nil).Once()

		err := svc.DeleteReply(ctx, author, commentID, "missing")

		assert.ErrorIs(t, err, service.ErrReplyNotFound)
	})
}
