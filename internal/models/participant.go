package models

// ParticipantStatus indicates the membership state of a participant.
type ParticipantStatus string

const (
	ParticipantMember  ParticipantStatus = "MEMBER"
	ParticipantInvited ParticipantStatus = "INVITED"
	ParticipantFormer  ParticipantStatus = "FORMER"
)

// Participant is a party in a group's expense graph.
// UserID, Email and FullName are nullable columns.
type Participant struct {
	ParticipantID string            `json:"participantID"` // Primary Key (UUID)
	GroupID       string            `json:"groupID"`       // FK -> Group.groupID
	UserID        *string           `json:"userID"`
	Email         *string           `json:"email"`
	FullName      *string           `json:"fullName"`
	Status        ParticipantStatus `json:"status"`
	AuditFields
}
