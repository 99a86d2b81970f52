package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
	MarkRead(ctx context.Context, userID, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteAll(ctx context.Context, userID primitive.ObjectID) (int64, error)

	NotifyNewProject(ctx context.Context, project *domain.Project)
	NotifyRosterChange(ctx context.Context, project *domain.Project, added, removed []domain.MemberSnapshot)
	NotifyAddedToProject(ctx context.Context, project *domain.Project, user domain.MemberSnapshot)
	NotifyInterestAccepted(ctx context.Context, project *domain.Project, user domain.MemberSnapshot)
	NotifyInterestRejected(ctx context.Context, project *domain.Project, user domain.MemberSnapshot)
	NotifyProjectComment(ctx context.Context, project *domain.Project, comment *domain.Comment)
	NotifyCommentReply(ctx context.Context, comment *domain.Comment, reply *domain.Reply)
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) Create(ctx context.Context, notif *domain.Notification) error {
	return s.notifRepo.Create(ctx, notif)
}

func (s *notificationService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id primitive.ObjectID) error {
	modified, err := s.notifRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	deleted, err := s.notifRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) DeleteAll(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.notifRepo.DeleteAll(ctx, userID)
}

// The Notify helpers run after the primary mutation has committed. They are
// fire-and-forget: a failed write is logged and dropped, never rolled back
// into the caller.

func (s *notificationService) NotifyNewProject(ctx context.Context, project *domain.Project) {
	content := fmt.Sprintf("You have been added to the new project %q", project.Title)
	for _, member := range project.TeamMembers {
		s.emit(ctx, member.UserID, domain.NotifNewProject, content, project.ID.Hex())
	}
}

func (s *notificationService) NotifyRosterChange(ctx context.Context, project *domain.Project, added, removed []domain.MemberSnapshot) {
	for _, member := range added {
		content := fmt.Sprintf("You have been added to the project %q", project.Title)
		s.emit(ctx, member.UserID, domain.NotifAddedToProject, content, project.ID.Hex())
	}
	for _, member := range removed {
		content := fmt.Sprintf("You have been removed from the project %q", project.Title)
		s.emit(ctx, member.UserID, domain.NotifRemovedFromProject, content, project.ID.Hex())
	}
}

func (s *notificationService) NotifyAddedToProject(ctx context.Context, project *domain.Project, user domain.MemberSnapshot) {
	content := fmt.Sprintf("You have been added to the project %q", project.Title)
	s.emit(ctx, user.UserID, domain.NotifAddedToProject, content, project.ID.Hex())
}

func (s *notificationService) NotifyInterestAccepted(ctx context.Context, project *domain.Project, user domain.MemberSnapshot) {
	content := fmt.Sprintf("Your interest in %q was accepted; you are now a team member", project.Title)
	s.emit(ctx, user.UserID, domain.NotifProjectAcceptance, content, project.ID.Hex())
}

func (s *notificationService) NotifyInterestRejected(ctx context.Context, project *domain.Project, user domain.MemberSnapshot) {
	content := fmt.Sprintf("Your interest in %q was declined", project.Title)
	s.emit(ctx, user.UserID, domain.NotifProjectRejection, content, project.ID.Hex())
}

func (s *notificationService) NotifyProjectComment(ctx context.Context, project *domain.Project, comment *domain.Comment) {
	content := fmt.Sprintf("%s commented on %q", comment.UserName, project.Title)
	recipients := append([]domain.MemberSnapshot{}, project.TeamMembers...)
	recipients = append(recipients, project.ProjectManager)
	seen := map[primitive.ObjectID]bool{comment.UserID: true}
	for _, member := range recipients {
		if seen[member.UserID] {
			continue
		}
		seen[member.UserID] = true
		s.emit(ctx, member.UserID, domain.NotifProjectComment, content, comment.ID.Hex())
	}
}

func (s *notificationService) NotifyCommentReply(ctx context.Context, comment *domain.Comment, reply *domain.Reply) {
	if comment.UserID == reply.UserID {
		return
	}
	content := fmt.Sprintf("%s replied to your comment", reply.UserName)
	s.emit(ctx, comment.UserID, domain.NotifCommentReply, content, comment.ID.Hex())
}

func (s *notificationService) emit(ctx context.Context, userID primitive.ObjectID, typ domain.NotificationType, content, referenceID string) {
	notif := &domain.Notification{
		UserID:      userID,
		Type:        typ,
		Content:     content,
		ReferenceID: referenceID,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		log.Printf("Failed to create %s notification for user %s: %v", typ, userID.Hex(), err)
	}
}
