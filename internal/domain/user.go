package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	Name              string             `bson:"name" json:"name"`
	Role              string             `bson:"role" json:"role"`
	Experience        string             `bson:"experience" json:"experience"`
	Skills            []string           `bson:"skills" json:"skills"`
	Designation       string             `bson:"designation" json:"designation"`
	Bio               string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PasswordHash      string             `bson:"password" json:"-"`
	ResetToken        *string            `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpires *time.Time         `bson:"reset_token_expires,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

type UserRole string

const (
	RoleEmployee       UserRole = "employee"
	RoleProjectManager UserRole = "project_manager"
	RoleAdmin          UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleProjectManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role. Roles form a
// ladder: admin covers project_manager, project_manager covers employee.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "project_manager":
		return u.Role == "project_manager" || u.Role == "admin"
	case "employee":
		return u.Role == "employee" || u.Role == "project_manager" || u.Role == "admin"
	default:
		return false
	}
}

// Snapshot freezes the identity fields embedded into project and comment
// documents. Snapshots are point-in-time copies and never refreshed.
func (u *User) Snapshot() MemberSnapshot {
	return MemberSnapshot{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
	}
}

type MemberSnapshot struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Email  string             `bson:"email" json:"email"`
	Name   string             `bson:"name" json:"name"`
}

type SignupInput struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Experience      string   `json:"experience"`
	Skills          []string `json:"skills"`
	Designation     string   `json:"designation"`
	Bio             string   `json:"bio"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
}

// Validate returns a field→message map; empty means valid. Role defaults to
// employee when omitted.
func (in *SignupInput) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if !strings.Contains(in.Email, "@") {
		errs["email"] = "a valid email is required"
	}
	if in.Role == "" {
		in.Role = string(RoleEmployee)
	}
	if !UserRole(in.Role).IsValid() {
		errs["role"] = "role must be one of employee, project_manager, admin"
	}
	if strings.TrimSpace(in.Experience) == "" {
		errs["experience"] = "experience is required"
	}
	if len(in.Skills) == 0 {
		errs["skills"] = "at least one skill is required"
	}
	if strings.TrimSpace(in.Designation) == "" {
		errs["designation"] = "designation is required"
	}
	if in.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
