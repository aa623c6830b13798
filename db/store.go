package db

import (
	"context"
	"errors"

	"squadfinder_backend/models"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence boundary for squads and members. Handlers and the
// sync engine depend on this interface rather than *sql.DB so the PIN gate
// and reload behavior can be exercised without a live database.
type Store interface {
	// SelectSquads returns every squad row ordered by (date, time,
	// created_at, id) ascending.
	SelectSquads(ctx context.Context) ([]models.SquadRow, error)
	// SelectMembersBySquadIDs returns members grouped by squad id, each
	// group in join order.
	SelectMembersBySquadIDs(ctx context.Context, squadIDs []string) (map[string][]models.Member, error)
	InsertSquad(ctx context.Context, draft models.SquadDraft, createdBy *string) (string, error)
	UpdateSquad(ctx context.Context, id string, draft models.SquadDraft) error
	DeleteSquad(ctx context.Context, id string) error
	InsertMember(ctx context.Context, squadID string, join models.MemberJoin) error
}
