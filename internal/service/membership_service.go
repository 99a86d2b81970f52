package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/pkg/keylock"
	"projecthub/internal/repository"
)

var (
	ErrAlreadyInterested = errors.New("user has already expressed interest")
	ErrAlreadyTeamMember = errors.New("user is already a team member")
	ErrInterestNotFound  = errors.New("user is not in the interested list")
	ErrNotProjectManager = errors.New("only the project manager may perform this action")
)

// MembershipService sequences the interest workflow: each operation is an
// authorization check, one project mutation, and a best-effort notification.
// Check-then-write sequences run under a per-project lock so two concurrent
// requests cannot both pass the same precondition. A user id is never in
// both team_members and interested_users: accept moves it between the lists
// in one atomic document update.
type MembershipService interface {
	ExpressInterest(ctx context.Context, projectID primitive.ObjectID, user *domain.User) error
	WithdrawInterest(ctx context.Context, projectID, userID primitive.ObjectID) error
	ListInterested(ctx context.Context, projectID primitive.ObjectID) ([]domain.MemberSnapshot, error)
	AddTeamMember(ctx context.Context, projectID, targetUserID primitive.ObjectID) error
	Accept(ctx context.Context, caller *domain.User, projectID, targetUserID primitive.ObjectID) error
	Reject(ctx context.Context, caller *domain.User, projectID, targetUserID primitive.ObjectID) error
}

type membershipService struct {
	projectRepo  repository.ProjectRepository
	userRepo     repository.UserRepository
	notifService NotificationService
	locks        *keylock.KeyLock
}

func NewMembershipService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, notifService NotificationService, locks *keylock.KeyLock) MembershipService {
	return &membershipService{
		projectRepo:  projectRepo,
		userRepo:     userRepo,
		notifService: notifService,
		locks:        locks,
	}
}

func (s *membershipService) ExpressInterest(ctx context.Context, projectID primitive.ObjectID, user *domain.User) error {
	return s.locks.Do(projectID.Hex(), func() error {
		project, err := s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
		if project.IsTeamMember(user.ID) {
			return ErrAlreadyTeamMember
		}
		if project.IsInterested(user.ID) {
			return ErrAlreadyInterested
		}

		_, err = s.projectRepo.AddInterested(ctx, projectID, user.Snapshot())
		return err
	})
}

func (s *membershipService) WithdrawInterest(ctx context.Context, projectID, userID primitive.ObjectID) error {
	modified, err := s.projectRepo.RemoveInterested(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrInterestNotFound
	}
	return nil
}

func (s *membershipService) ListInterested(ctx context.Context, projectID primitive.ObjectID) ([]domain.MemberSnapshot, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project.InterestedUsers, nil
}

// AddTeamMember adds a user to the roster directly, outside the interest
// workflow. If the user happens to be in the interested list the move is
// done with the atomic accept operation, keeping the exclusivity invariant.
func (s *membershipService) AddTeamMember(ctx context.Context, projectID, targetUserID primitive.ObjectID) error {
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	return s.locks.Do(projectID.Hex(), func() error {
		project, err := s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
		if project.IsTeamMember(targetUserID) {
			return ErrAlreadyTeamMember
		}

		if project.IsInterested(targetUserID) {
			_, err = s.projectRepo.AcceptInterested(ctx, projectID, target.Snapshot())
		} else {
			_, err = s.projectRepo.AddTeamMember(ctx, projectID, target.Snapshot())
		}
		if err != nil {
			return err
		}

		s.notifService.NotifyAddedToProject(ctx, project, target.Snapshot())
		return nil
	})
}

func (s *membershipService) Accept(ctx context.Context, caller *domain.User, projectID, targetUserID primitive.ObjectID) error {
	return s.locks.Do(projectID.Hex(), func() error {
		project, err := s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
		if !project.ManagedBy(caller.Email) {
			return ErrNotProjectManager
		}
		if !project.IsInterested(targetUserID) {
			return ErrInterestNotFound
		}

		var snapshot domain.MemberSnapshot
		for _, m := range project.InterestedUsers {
			if m.UserID == targetUserID {
				snapshot = m
				break
			}
		}

		if _, err := s.projectRepo.AcceptInterested(ctx, projectID, snapshot); err != nil {
			return err
		}

		s.notifService.NotifyInterestAccepted(ctx, project, snapshot)
		return nil
	})
}

func (s *membershipService) Reject(ctx context.Context, caller *domain.User, projectID, targetUserID primitive.ObjectID) error {
	return s.locks.Do(projectID.Hex(), func() error {
		project, err := s.projectRepo.GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
		if !project.ManagedBy(caller.Email) {
			return ErrNotProjectManager
		}

		modified, err := s.projectRepo.RemoveInterested(ctx, projectID, targetUserID)
		if err != nil {
			return err
		}
		if modified == 0 {
			return ErrInterestNotFound
		}

		var snapshot domain.MemberSnapshot
		for _, m := range project.InterestedUsers {
			if m.UserID == targetUserID {
				snapshot = m
				break
			}
		}
		s.notifService.NotifyInterestRejected(ctx, project, snapshot)
		return nil
	})
}
