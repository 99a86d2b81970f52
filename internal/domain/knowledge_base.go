package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KnowledgeBaseItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"`
	URL       string             `bson:"url" json:"url"`
	FileType  string             `bson:"file_type,omitempty" json:"file_type,omitempty"`
	CreatedBy MemberSnapshot     `bson:"created_by" json:"created_by"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

const (
	KnowledgeBaseLink = "link"
	KnowledgeBaseFile = "file"
)

type CreateLinkInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (in *CreateLinkInput) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(in.URL) == "" {
		errs["url"] = "url is required"
	}
	return errs
}

type UpdateKnowledgeBaseInput struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}
