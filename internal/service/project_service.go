package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/pkg/keylock"
	"projecthub/internal/repository"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

type ProjectService interface {
	Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, status, tech string) ([]domain.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error)
	Update(ctx context.Context, id primitive.ObjectID, input domain.UpdateProjectInput) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByMember(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error)
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	notifService NotificationService
	locks        *keylock.KeyLock
}

func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, notifService NotificationService, locks *keylock.KeyLock) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		notifService: notifService,
		locks:        locks,
	}
}

func (s *projectService) Create(ctx context.Context, input domain.CreateProjectInput) (*domain.Project, error) {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	manager, err := s.resolveSnapshot(ctx, input.ProjectManager)
	if err != nil {
		return nil, err
	}

	members, err := s.resolveSnapshots(ctx, input.TeamMembers)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Title:          input.Title,
		Description:    input.Description,
		Status:         domain.ProjectStatus(input.Status),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		TechStack:      input.TechStack,
		TeamMembers:    members,
		ProjectManager: manager,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.notifService.NotifyNewProject(ctx, project)

	return project, nil
}

func (s *projectService) List(ctx context.Context, status, tech string) ([]domain.Project, error) {
	return s.projectRepo.List(ctx, status, tech)
}

func (s *projectService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// Update applies a field-set patch. When a new roster is provided the old
// and new member sets are diffed under the project lock, and the membership
// changes fan out as notifications.
func (s *projectService) Update(ctx context.Context, id primitive.ObjectID, input domain.UpdateProjectInput) error {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}

	fields := bson.M{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.TechStack != nil {
		fields["tech_stack"] = input.TechStack
	}

	if input.TeamMembers == nil {
		if len(fields) == 0 {
			return ErrNoValidFields
		}
		modified, err := s.projectRepo.Update(ctx, id, domain.FieldSetPatch(fields))
		if err != nil {
			return err
		}
		if modified == 0 {
			return ErrProjectNotFound
		}
		return nil
	}

	newMembers, err := s.resolveSnapshots(ctx, input.TeamMembers)
	if err != nil {
		return err
	}
	fields["team_members"] = newMembers

	return s.locks.Do(id.Hex(), func() error {
		project, err := s.projectRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}

		added, removed := diffRoster(project.TeamMembers, newMembers)

		modified, err := s.projectRepo.Update(ctx, id, domain.FieldSetPatch(fields))
		if err != nil {
			return err
		}
		if modified == 0 {
			return ErrProjectNotFound
		}

		s.notifService.NotifyRosterChange(ctx, project, added, removed)
		return nil
	})
}

func (s *projectService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *projectService) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]domain.Project, error) {
	return s.projectRepo.ListByMember(ctx, userID)
}

func (s *projectService) resolveSnapshot(ctx context.Context, hexID string) (domain.MemberSnapshot, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return domain.MemberSnapshot{}, &ValidationError{Fields: map[string]string{"user_id": "invalid user id " + hexID}}
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.MemberSnapshot{}, err
	}
	if user == nil {
		return domain.MemberSnapshot{}, ErrUserNotFound
	}
	return user.Snapshot(), nil
}

func (s *projectService) resolveSnapshots(ctx context.Context, hexIDs []string) ([]domain.MemberSnapshot, error) {
	snapshots := make([]domain.MemberSnapshot, 0, len(hexIDs))
	for _, hexID := range hexIDs {
		snapshot, err := s.resolveSnapshot(ctx, hexID)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func diffRoster(old, new []domain.MemberSnapshot) (added, removed []domain.MemberSnapshot) {
	oldSet := make(map[primitive.ObjectID]bool, len(old))
	for _, m := range old {
		oldSet[m.UserID] = true
	}
	newSet := make(map[primitive.ObjectID]bool, len(new))
	for _, m := range new {
		newSet[m.UserID] = true
	}
	for _, m := range new {
		if !oldSet[m.UserID] {
			added = append(added, m)
		}
	}
	for _, m := range old {
		if !newSet[m.UserID] {
			removed = append(removed, m)
		}
	}
	return added, removed
}
