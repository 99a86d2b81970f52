package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"projecthub/internal/config"
	"projecthub/internal/pkg/keylock"
	"projecthub/internal/repository"
)

type Services struct {
	Auth          AuthService
	User          UserService
	Project       ProjectService
	Membership    MembershipService
	Comment       CommentService
	Notification  NotificationService
	KnowledgeBase KnowledgeBaseService
	Email         EmailService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	// One lock table shared by every per-project mutation path.
	projectLocks := keylock.New()

	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, emailService, cfg)
	userService := NewUserService(repos.User)
	notificationService := NewNotificationService(repos.Notification)
	projectService := NewProjectService(repos.Project, repos.User, notificationService, projectLocks)
	membershipService := NewMembershipService(repos.Project, repos.User, notificationService, projectLocks)
	commentService := NewCommentService(repos.Comment, repos.Project, notificationService, redis)
	knowledgeBaseService := NewKnowledgeBaseService(repos.KnowledgeBase, minioClient, cfg)

	return &Services{
		Auth:          authService,
		User:          userService,
		Project:       projectService,
		Membership:    membershipService,
		Comment:       commentService,
		Notification:  notificationService,
		KnowledgeBase: knowledgeBaseService,
		Email:         emailService,
	}
}
