package services

import (
	"context"
	"log/slog"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
)

// identityLookupChunkSize bounds how many user IDs a single identity store
// query may carry.
const identityLookupChunkSize = 50

// identityEnricher attaches display data (email, name, avatar) to numeric
// balance results. It is decoupled from the arithmetic: a failed lookup
// degrades to fallback labels and never fails the request.
type identityEnricher struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func newIdentityEnricher(userRepo portsrepo.UserRepositoryFacade) *identityEnricher {
	return &identityEnricher{userRepo: userRepo}
}

// resolveUsers batch-resolves every distinct user ID referenced by the given
// balances, in chunks. Chunks that fail are logged and skipped; their users
// fall back to participant-stored details during decoration.
func (e *identityEnricher) resolveUsers(ctx context.Context, groupBalances []domain.GroupBalances) map[string]domain.User {
	seen := make(map[string]struct{})
	var userIDs []string
	for _, gb := range groupBalances {
		for _, b := range gb.Balances {
			if b.UserID == nil || *b.UserID == "" {
				continue
			}
			if _, ok := seen[*b.UserID]; ok {
				continue
			}
			seen[*b.UserID] = struct{}{}
			userIDs = append(userIDs, *b.UserID)
		}
	}

	resolved := make(map[string]domain.User, len(userIDs))
	for start := 0; start < len(userIDs); start += identityLookupChunkSize {
		end := start + identityLookupChunkSize
		if end > len(userIDs) {
			end = len(userIDs)
		}

		users, err := e.userRepo.FindUsersByIDs(ctx, userIDs[start:end])
		if err != nil {
			e.LogWarn(ctx, "Identity lookup failed for chunk, falling back to participant details",
				slog.Int("chunk_start", start),
				slog.Int("chunk_size", end-start),
				slog.String("error", err.Error()))
			continue
		}
		for id, u := range users {
			resolved[id] = u
		}
	}
	return resolved
}

// decorate fills the display fields of every balance in place, preferring the
// resolved account profile and falling back to the participant's own stored
// email and name when no linked account was resolved.
func (e *identityEnricher) decorate(groupBalances []domain.GroupBalances, users map[string]domain.User, participants map[string]domain.ParticipantSet) {
	for gi := range groupBalances {
		gb := &groupBalances[gi]
		set := participants[gb.GroupID]
		for bi := range gb.Balances {
			b := &gb.Balances[bi]

			if b.UserID != nil {
				if u, ok := users[*b.UserID]; ok {
					b.Email = strPtr(u.Email)
					b.FullName = strPtr(u.FullName)
					if u.AvatarURL != "" {
						b.AvatarURL = strPtr(u.AvatarURL)
					}
					continue
				}
			}

			if p, ok := set.ByParticipantID(b.ParticipantID); ok {
				b.Email = p.Email
				b.FullName = strPtr(p.DisplayName())
				continue
			}

			b.FullName = strPtr("Unknown User")
		}
	}
}

func strPtr(s string) *string {
	return &s
}
