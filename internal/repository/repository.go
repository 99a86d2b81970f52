package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
)

type Repositories struct {
	User          UserRepository
	Project       ProjectRepository
	Comment       CommentRepository
	Notification  NotificationRepository
	KnowledgeBase KnowledgeBaseRepository
}

func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Project:       NewProjectRepository(db),
		Comment:       NewCommentRepository(db),
		Notification:  NewNotificationRepository(db),
		KnowledgeBase: NewKnowledgeBaseRepository(db),
	}
}
