package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, userID, id primitive.ObjectID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) DeleteAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyNewProject(ctx context.Context, project *domain.Project) {
	m.Called(ctx, project)
}

func (m *NotificationService) NotifyRosterChange(ctx context.Context, project *domain.Project, added, removed []domain.MemberSnapshot) {
	m.Called(ctx, project, added, removed)
}

func (m *NotificationService) NotifyAddedToProject(ctx context.Context, project *domain.Project, user domain.MemberSnapshot) {
	m.Called(ctx, project, user)
}

func (m *NotificationService) NotifyInterestAccepted(ctx context.Context, project *domain.Project, user domain.MemberSnapshot) {
	m.Called(ctx, project, user)
}

func (m *NotificationService) NotifyInterestRejected(ctx context.Context, project *domain.Project, user domain.MemberSnapshot) {
	m.Called(ctx, project, user)
}

func (m *NotificationService) NotifyProjectComment(ctx context.Context, project *domain.Project, comment *domain.Comment) {
	m.Called(ctx, project, comment)
}

func (m *NotificationService) NotifyCommentReply(ctx context.Context, comment *domain.Comment, reply *domain.Reply) {
	m.Called(ctx, comment, reply)
}
