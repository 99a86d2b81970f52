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

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	notifID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		mockRepo.On("MarkRead", ctx, notifID, userID).Return(int64(1), nil).Once()

		assert.NoError(t, svc.MarkRead(ctx, userID, notifID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Someone Else's Notification Reads As Not Found", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		// Owner-scoped filter matches nothing.
		mockRepo.On("MarkRead", ctx, notifID, userID).Return(int64(0), nil).Once()

		err := svc.MarkRead(ctx, userID, notifID)

		assert.ErrorIs(t, err, service.ErrNotificationNotFound)
	})
}

func TestNotificationService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()
	notifID := primitive.NewObjectID()

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		mockRepo.On("Delete", ctx, notifID, userID).Return(int64(0), nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, userID, notifID), service.ErrNotificationNotFound)
	})

	t.Run("DeleteAll Returns The Count", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		mockRepo.On("DeleteAll", ctx, userID).Return(int64(4), nil).Once()

		count, err := svc.DeleteAll(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}

func TestNotificationService_NotifyProjectComment(t *testing.T) {
	ctx := context.Background()

	author := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "Dev", Email: "dev@example.com"}
	teammate := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "Mate", Email: "mate@example.com"}
	manager := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "PM", Email: "pm@example.com"}

	comment := &domain.Comment{
		ID:       primitive.NewObjectID(),
		UserID:   author.UserID,
		UserName: author.Name,
		Text:     "Deploy went out",
	}

	t.Run("Fans Out To Team And Manager Excluding The Author", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		project := &domain.Project{
			ID:             primitive.NewObjectID(),
			Title:          "Portal",
			TeamMembers:    []domain.MemberSnapshot{author, teammate},
			ProjectManager: manager,
		}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == teammate.UserID && n.Type == domain.NotifProjectComment
		})).Return(nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == manager.UserID && n.Type == domain.NotifProjectComment
		})).Return(nil).Once()

		svc.NotifyProjectComment(ctx, project, comment)

		mockRepo.AssertExpectations(t)
		mockRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Manager On The Roster Is Notified Once", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		project := &domain.Project{
			ID:             primitive.NewObjectID(),
			Title:          "Portal",
			TeamMembers:    []domain.MemberSnapshot{author, manager},
			ProjectManager: manager,
		}

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == manager.UserID
		})).Return(nil).Once()

		svc.NotifyProjectComment(ctx, project, comment)

		mockRepo.AssertNumberOfCalls(t, "Create", 1)
	})
}

func TestNotificationService_NotifyCommentReply(t *testing.T) {
	ctx := context.Background()

	commentAuthor := primitive.NewObjectID()
	comment := &domain.Comment{ID: primitive.NewObjectID(), UserID: commentAuthor}

	t.Run("Notifies The Comment Author", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		reply := &domain.Reply{ID: "r1", UserID: primitive.NewObjectID(), UserName: "PM"}
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == commentAuthor &&
				n.Type == domain.NotifCommentReply &&
				n.ReferenceID == comment.ID.Hex()
		})).Return(nil).Once()

		svc.NotifyCommentReply(ctx, comment, reply)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Self Reply Is Silent", func(t *testing.T) {
		mockRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(mockRepo)

		reply := &domain.Reply{ID: "r2", UserID: commentAuthor}

		svc.NotifyCommentReply(ctx, comment, reply)

		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_NotifyInterestAccepted(t *testing.T) {
	ctx := context.Background()

	accepted := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "Dev"}
	project := &domain.Project{ID: primitive.NewObjectID(), Title: "Portal"}

	mockRepo := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(mockRepo)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == accepted.UserID &&
			n.Type == domain.NotifProjectAcceptance &&
			n.ReferenceID == project.ID.Hex()
	})).Return(nil).Once()

	svc.NotifyInterestAccepted(ctx, project, accepted)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestNotificationService_NotifyRosterChange(t *testing.T) {
	ctx := context.Background()

	joins := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "Joins"}
	leaves := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "Leaves"}
	project := &domain.Project{ID: primitive.NewObjectID(), Title: "Portal"}

	mockRepo := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(mockRepo)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == joins.UserID && n.Type == domain.NotifAddedToProject
	})).Return(nil).Once()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == leaves.UserID && n.Type == domain.NotifRemovedFromProject
	})).Return(nil).Once()

	svc.NotifyRosterChange(ctx, project, []domain.MemberSnapshot{joins}, []domain.MemberSnapshot{leaves})

	mockRepo.AssertExpectations(t)
	// Members kept on the roster get nothing.
	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotificationService_NotifyFailuresDoNotEscalate(t *testing.T) {
	ctx := context.Background()

	member := domain.MemberSnapshot{UserID: primitive.NewObjectID(), Name: "Dev"}
	project := &domain.Project{
		ID:          primitive.NewObjectID(),
		Title:       "Portal",
		TeamMembers: []domain.MemberSnapshot{member},
	}

	mockRepo := new(mocks.NotificationRepository)
	svc := service.NewNotificationService(mockRepo)

	mockRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

	// A failed write is logged and dropped; no panic, no error surface.
	svc.NotifyNewProject(ctx, project)

	mockRepo.AssertExpectations(t)
}
