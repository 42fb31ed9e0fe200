package domain

// User is the identity-store view of a registered account, used to decorate
// numeric balances with display data.
type User struct {
	UserID    string `json:"userID"` // Primary Key (UUID)
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarURL"`
	AuditFields
}
