package domain

// ParticipantStatus indicates the membership state of a participant.
type ParticipantStatus string

const (
	// ParticipantMember is a participant with an active group membership.
	ParticipantMember ParticipantStatus = "MEMBER"
	// ParticipantInvited was invited by email and has no linked account yet.
	ParticipantInvited ParticipantStatus = "INVITED"
	// ParticipantFormer left or was removed; kept so history stays attributable.
	ParticipantFormer ParticipantStatus = "FORMER"
)

// Participant is a party in a group's expense graph. It may or may not be
// backed by a registered user account: invited participants carry only an
// email until they sign up, and former participants are never deleted because
// historical expenses still reference them.
type Participant struct {
	ParticipantID string            `json:"participantID"` // Primary Key (UUID)
	GroupID       string            `json:"groupID"`       // FK -> Group.groupID
	UserID        *string           `json:"userID"`        // Nullable FK -> User.userID
	Email         *string           `json:"email"`         // Nullable, set for invited participants
	FullName      *string           `json:"fullName"`      // Nullable display name
	Status        ParticipantStatus `json:"status"`
	AuditFields
}

// DisplayName picks the best available label for a participant without a
// resolved account: stored name first, then email, then a generic fallback.
func (p Participant) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	if p.Email != nil && *p.Email != "" {
		return *p.Email
	}
	return "Unknown User"
}

// ParticipantSet is the resolved view of a group's participants with lookup
// indexes by participant ID and, where a linked account exists, by user ID.
// It is built once per computation and passed around explicitly so concurrent
// requests never share lookup state.
type ParticipantSet struct {
	Participants []Participant

	byParticipantID map[string]Participant
	byUserID        map[string]Participant
}

// NewParticipantSet indexes the given participants. Participants without a
// user ID are still indexed by participant ID; former participants resolve
// exactly like active ones.
func NewParticipantSet(participants []Participant) ParticipantSet {
	set := ParticipantSet{
		Participants:    participants,
		byParticipantID: make(map[string]Participant, len(participants)),
		byUserID:        make(map[string]Participant, len(participants)),
	}
	for _, p := range participants {
		set.byParticipantID[p.ParticipantID] = p
		if p.UserID != nil && *p.UserID != "" {
			set.byUserID[*p.UserID] = p
		}
	}
	return set
}

// ByParticipantID resolves a participant by its stable participant ID.
func (s ParticipantSet) ByParticipantID(participantID string) (Participant, bool) {
	p, ok := s.byParticipantID[participantID]
	return p, ok
}

// ByUserID resolves a participant by its linked account, when one exists.
func (s ParticipantSet) ByUserID(userID string) (Participant, bool) {
	p, ok := s.byUserID[userID]
	return p, ok
}

// Len returns the number of resolved participants.
func (s ParticipantSet) Len() int {
	return len(s.Participants)
}
