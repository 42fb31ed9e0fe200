package dto

import (
	"time"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// GroupResponse defines the data returned for a group.
type GroupResponse struct {
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParticipantResponse defines the data returned for a group participant.
type ParticipantResponse struct {
	ParticipantID string  `json:"participant_id"`
	UserID        *string `json:"user_id"`
	Email         *string `json:"email,omitempty"`
	FullName      *string `json:"full_name,omitempty"`
	Status        string  `json:"status"`
}

// GroupDetailResponse is a group together with its participant roster.
type GroupDetailResponse struct {
	GroupResponse
	Participants []ParticipantResponse `json:"participants"`
}

// ToGroupResponse converts a domain.Group to GroupResponse DTO
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
	}
}

// ToGroupListResponse converts a slice of domain Groups to response DTOs
func ToGroupListResponse(groups []domain.Group) []GroupResponse {
	responses := make([]GroupResponse, len(groups))
	for i := range groups {
		responses[i] = ToGroupResponse(&groups[i])
	}
	return responses
}

// ToParticipantResponse converts a domain.Participant to ParticipantResponse DTO
func ToParticipantResponse(p domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		ParticipantID: p.ParticipantID,
		UserID:        p.UserID,
		Email:         p.Email,
		FullName:      p.FullName,
		Status:        string(p.Status),
	}
}

// ToGroupDetailResponse converts a group and its roster to a detail DTO
func ToGroupDetailResponse(g *domain.Group, participants []domain.Participant) GroupDetailResponse {
	response := GroupDetailResponse{
		GroupResponse: ToGroupResponse(g),
		Participants:  make([]ParticipantResponse, len(participants)),
	}
	for i, p := range participants {
		response.Participants[i] = ToParticipantResponse(p)
	}
	return response
}
