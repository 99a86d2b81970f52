package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
)

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, status, tech string) ([]domain.Project, error) {
	args := m.Called(ctx, status, tech)
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *ProjectRepository) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ProjectPatch) (int64, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) AddInterested(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error) {
	args := m.Called(ctx, id, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) RemoveInterested(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) AcceptInterested(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error) {
	args := m.Called(ctx, id, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProjectRepository) AddTeamMember(ctx context.Context, id primitive.ObjectID, user domain.MemberSnapshot) (int64, error) {
	args := m.Called(ctx, id, user)
	return args.Get(0).(int64), args.Error(1)
}
