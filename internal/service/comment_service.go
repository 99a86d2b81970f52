package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/repository"
)

var (
	ErrCommentNotFound    = errors.New("comment not found")
	ErrReplyNotFound      = errors.New("reply not found")
	ErrNotCommentAuthor   = errors.New("only the author may edit this")
	ErrCannotDeleteOthers = errors.New("insufficient permissions to delete this")
)

type CommentService interface {
	Create(ctx context.Context, projectID primitive.ObjectID, author *domain.User, input domain.CommentInput) (*domain.Comment, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Comment, error)
	Update(ctx context.Context, caller *domain.User, commentID primitive.ObjectID, input domain.CommentInput) error
	Delete(ctx context.Context, caller *domain.User, commentID primitive.ObjectID) error

	AddReply(ctx context.Context, commentID primitive.ObjectID, author *domain.User, input domain.CommentInput) (*domain.Reply, error)
	UpdateReply(ctx context.Context, caller *domain.User, commentID primitive.ObjectID, replyID string, input domain.CommentInput) error
	DeleteReply(ctx context.Context, caller *domain.User, commentID primitive.ObjectID, replyID string) error
}

type commentService struct {
	commentRepo  repository.CommentRepository
	projectRepo  repository.ProjectRepository
	notifService NotificationService
	redis        *redis.Client
}

func NewCommentService(commentRepo repository.CommentRepository, projectRepo repository.ProjectRepository, notifService NotificationService, redis *redis.Client) CommentService {
	return &commentService{
		commentRepo:  commentRepo,
		projectRepo:  projectRepo,
		notifService: notifService,
		redis:        redis,
	}
}

func (s *commentService) Create(ctx context.Context, projectID primitive.ObjectID, author *domain.User, input domain.CommentInput) (*domain.Comment, error) {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	comment := &domain.Comment{
		ProjectID: projectID,
		UserID:    author.ID,
		UserName:  author.Name,
		UserEmail: author.Email,
		Text:      input.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, projectID)
	s.notifService.NotifyProjectComment(ctx, project, comment)

	return comment, nil
}

func (s *commentService) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.Comment, error) {
	cacheKey := fmt.Sprintf("comments:%s", projectID.Hex())

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var comments []domain.Comment
			if json.Unmarshal([]byte(cached), &comments) == nil {
				return comments, nil
			}
		}
	}

	comments, err := s.commentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(comments); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, 5*time.Minute).Err()
		}
	}

	return comments, nil
}

func (s *commentService) Update(ctx context.Context, caller *domain.User, commentID primitive.ObjectID, input domain.CommentInput) error {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if comment.UserID != caller.ID {
		return ErrNotCommentAuthor
	}

	modified, err := s.commentRepo.UpdateText(ctx, commentID, input.Text)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrCommentNotFound
	}

	s.invalidateCache(ctx, comment.ProjectID)
	return nil
}

func (s *commentService) Delete(ctx context.Context, caller *domain.User, commentID primitive.ObjectID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if !canDelete(caller, comment.UserID) {
		return ErrCannotDeleteOthers
	}

	deleted, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrCommentNotFound
	}

	s.invalidateCache(ctx, comment.ProjectID)
	return nil
}

func (s *commentService) AddReply(ctx context.Context, commentID primitive.ObjectID, author *domain.User, input domain.CommentInput) (*domain.Reply, error) {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	now := time.Now().UTC()
	reply := domain.Reply{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		UserName:  author.Name,
		UserEmail: author.Email,
		Text:      input.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	modified, err := s.commentRepo.AddReply(ctx, commentID, reply)
	if err != nil {
		return nil, err
	}
	if modified == 0 {
		return nil, ErrCommentNotFound
	}

	s.invalidateCache(ctx, comment.ProjectID)
	s.notifService.NotifyCommentReply(ctx, comment, &reply)

	return &reply, nil
}

func (s *commentService) UpdateReply(ctx context.Context, caller *domain.User, commentID primitive.ObjectID, replyID string, input domain.CommentInput) error {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return &ValidationError{Fields: fieldErrs}
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	reply := comment.FindReply(replyID)
	if reply == nil {
		return ErrReplyNotFound
	}
	if reply.UserID != caller.ID {
		return ErrNotCommentAuthor
	}

	modified, err := s.commentRepo.UpdateReply(ctx, commentID, replyID, input.Text)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrReplyNotFound
	}

	s.invalidateCache(ctx, comment.ProjectID)
	return nil
}

func (s *commentService) DeleteReply(ctx context.Context, caller *domain.User, commentID primitive.ObjectID, replyID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	reply := comment.FindReply(replyID)
	if reply == nil {
		return ErrReplyNotFound
	}
	if !canDelete(caller, reply.UserID) {
		return ErrCannotDeleteOthers
	}

	modified, err := s.commentRepo.RemoveReply(ctx, commentID, replyID)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrReplyNotFound
	}

	s.invalidateCache(ctx, comment.ProjectID)
	return nil
}

// Authors may always delete their own; admins and project managers may
// delete anyone's.
func canDelete(caller *domain.User, authorID primitive.ObjectID) bool {
	if caller.ID == authorID {
		return true
	}
	return caller.Role == string(domain.RoleAdmin) || caller.Role == string(domain.RoleProjectManager)
}

func (s *commentService) invalidateCache(ctx context.Context, projectID primitive.ObjectID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, fmt.Sprintf("comments:%s", projectID.Hex())).Err(); err != nil {
		log.Printf("Failed to invalidate comment cache for project %s: %v", projectID.Hex(), err)
	}
}
