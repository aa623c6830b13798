package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"squadfinder_backend/models"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store used in tests and local development. It
// mirrors the Postgres ordering contract and counts writes so tests can
// assert which requests were issued.
type MemStore struct {
	mu      sync.Mutex
	squads  []models.SquadRow
	members map[string][]models.Member

	InsertSquadCalls  int
	UpdateSquadCalls  int
	DeleteSquadCalls  int
	InsertMemberCalls int

	// FailWrites makes every write return this error when set.
	FailWrites error
}

func NewMemStore() *MemStore {
	return &MemStore{members: make(map[string][]models.Member)}
}

func (m *MemStore) SelectSquads(ctx context.Context) ([]models.SquadRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.SquadRow, len(m.squads))
	copy(out, m.squads)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (m *MemStore) SelectMembersBySquadIDs(ctx context.Context, squadIDs []string) (map[string][]models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	grouped := make(map[string][]models.Member)
	for _, id := range squadIDs {
		if members, ok := m.members[id]; ok {
			group := make([]models.Member, len(members))
			copy(group, members)
			grouped[id] = group
		}
	}
	return grouped, nil
}

func (m *MemStore) InsertSquad(ctx context.Context, draft models.SquadDraft, createdBy *string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertSquadCalls++
	if m.FailWrites != nil {
		return "", m.FailWrites
	}

	id := uuid.NewString()
	row := models.SquadRow{
		ID:           id,
		Title:        draft.Title,
		LeaderName:   draft.LeaderName,
		Date:         draft.Date,
		Time:         draft.Time,
		Location:     draft.Location,
		Discipline:   draft.Discipline,
		Capacity:     draft.Capacity,
		ContactType:  draft.Contact.Type,
		ContactValue: draft.Contact.Value,
		LeaderPIN:    draft.LeaderPIN,
		CreatedAt:    time.Now().UTC(),
	}
	row.Message = nullable(draft.Message)
	row.CreatedBy = nullable(createdBy)
	m.squads = append(m.squads, row)
	return id, nil
}

func (m *MemStore) UpdateSquad(ctx context.Context, id string, draft models.SquadDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateSquadCalls++
	if m.FailWrites != nil {
		return m.FailWrites
	}

	for i := range m.squads {
		if m.squads[i].ID == id {
			r := &m.squads[i]
			r.Title = draft.Title
			r.LeaderName = draft.LeaderName
			r.Date = draft.Date
			r.Time = draft.Time
			r.Location = draft.Location
			r.Discipline = draft.Discipline
			r.Capacity = draft.Capacity
			r.Message = nullable(draft.Message)
			r.ContactType = draft.Contact.Type
			r.ContactValue = draft.Contact.Value
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) DeleteSquad(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteSquadCalls++
	if m.FailWrites != nil {
		return m.FailWrites
	}

	for i := range m.squads {
		if m.squads[i].ID == id {
			m.squads = append(m.squads[:i], m.squads[i+1:]...)
			delete(m.members, id)
			return nil
		}
	}
	return nil
}

func (m *MemStore) InsertMember(ctx context.Context, squadID string, join models.MemberJoin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InsertMemberCalls++
	if m.FailWrites != nil {
		return m.FailWrites
	}

	m.members[squadID] = append(m.members[squadID], models.Member{
		Name:     join.Name,
		Note:     join.Note,
		JoinedAt: time.Now().UnixMilli(),
	})
	return nil
}
