package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification rows are an append-only per-user log, written as a side
// effect of project and comment mutations. ReferenceID is an untyped hex
// string (project or comment id); no referential integrity is enforced
// against it.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type        NotificationType   `bson:"type" json:"type"`
	Content     string             `bson:"content" json:"content"`
	ReferenceID string             `bson:"reference_id" json:"reference_id"`
	IsRead      bool               `bson:"is_read" json:"is_read"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type NotificationType string

const (
	NotifProjectAdded       NotificationType = "project_added"
	NotifProjectComment     NotificationType = "project_comment"
	NotifCommentReply       NotificationType = "comment_reply"
	NotifNewProject         NotificationType = "new_project"
	NotifAddedToProject     NotificationType = "added_to_project"
	NotifRemovedFromProject NotificationType = "removed_from_project"
	NotifProjectAcceptance  NotificationType = "project_acceptance"
	NotifProjectRejection   NotificationType = "project_rejection"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifProjectAdded, NotifProjectComment, NotifCommentReply,
		NotifNewProject, NotifAddedToProject, NotifRemovedFromProject,
		NotifProjectAcceptance, NotifProjectRejection:
		return true
	default:
		return false
	}
}
