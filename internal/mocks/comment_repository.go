package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
)

type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *CommentRepository) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Comment, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *CommentRepository) UpdateText(ctx context.Context, id primitive.ObjectID, text string) (int64, error) {
	args := m.Called(ctx, id, text)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) AddReply(ctx context.Context, commentID primitive.ObjectID, reply domain.Reply) (int64, error) {
	args := m.Called(ctx, commentID, reply)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) UpdateReply(ctx context.Context, commentID primitive.ObjectID, replyID, text string) (int64, error) {
	args := m.Called(ctx, commentID, replyID, text)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CommentRepository) RemoveReply(ctx context.Context, commentID primitive.ObjectID, replyID string) (int64, error) {
	args := m.Called(ctx, commentID, replyID)
	return args.Get(0).(int64), args.Error(1)
}
