package domain

import "time"

// GroupRole indicates what a member is allowed to do inside a group.
type GroupRole string

const (
	RoleAdmin  GroupRole = "ADMIN"
	RoleMember GroupRole = "MEMBER"
)

// Group represents a circle of people sharing expenses with each other.
type Group struct {
	GroupID     string `json:"groupID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"` // Nullable user description
	AuditFields
}

// GroupMembership links a registered user to a group with a role.
type GroupMembership struct {
	UserID   string    `json:"userID"`
	GroupID  string    `json:"groupID"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}
