package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Status          ProjectStatus      `bson:"status" json:"status"`
	StartDate       time.Time          `bson:"start_date" json:"start_date"`
	EndDate         time.Time          `bson:"end_date" json:"end_date"`
	TechStack       []string           `bson:"tech_stack" json:"tech_stack"`
	TeamMembers     []MemberSnapshot   `bson:"team_members" json:"team_members"`
	ProjectManager  MemberSnapshot     `bson:"project_manager" json:"project_manager"`
	InterestedUsers []MemberSnapshot   `bson:"interested_users" json:"interested_users"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

type ProjectStatus string

const (
	StatusPlanning   ProjectStatus = "planning"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on_hold"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	default:
		return false
	}
}

func (p *Project) IsTeamMember(userID primitive.ObjectID) bool {
	for _, m := range p.TeamMembers {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (p *Project) IsInterested(userID primitive.ObjectID) bool {
	for _, m := range p.InterestedUsers {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// ManagedBy matches the caller's identity claim against the manager snapshot.
func (p *Project) ManagedBy(email string) bool {
	return p.ProjectManager.Email == email
}

type CreateProjectInput struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	TechStack      []string  `json:"tech_stack"`
	TeamMembers    []string  `json:"team_members"`
	ProjectManager string    `json:"project_manager"`
}

func (in *CreateProjectInput) Validate() map[string]string {
	errs := map[string]string{}
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 100 {
		errs["title"] = "title is required and must be at most 100 characters"
	}
	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "description is required"
	}
	if !ProjectStatus(in.Status).IsValid() {
		errs["status"] = "status must be one of planning, in_progress, completed, on_hold"
	}
	if in.StartDate.IsZero() {
		errs["start_date"] = "start_date is required"
	}
	if in.EndDate.IsZero() {
		errs["end_date"] = "end_date is required"
	}
	if in.TechStack == nil {
		errs["tech_stack"] = "tech_stack is required"
	}
	if in.ProjectManager == "" {
		errs["project_manager"] = "project_manager is required"
	}
	return errs
}

// UpdateProjectInput is a partial edit; nil fields are left untouched.
// A non-nil TeamMembers replaces the roster and triggers membership
// notifications for the diff.
type UpdateProjectInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	TechStack   []string   `json:"tech_stack"`
	TeamMembers []string   `json:"team_members"`
}

func (in *UpdateProjectInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" || len(title) > 100 {
			errs["title"] = "title must be non-empty and at most 100 characters"
		}
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		errs["description"] = "description must not be empty"
	}
	if in.Status != nil && !ProjectStatus(*in.Status).IsValid() {
		errs["status"] = "status must be one of planning, in_progress, completed, on_hold"
	}
	return errs
}
