package models

// User is the identity-store row for a registered account.
type User struct {
	UserID    string `json:"userID"` // Primary Key (UUID)
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarURL"`
	AuditFields
}
