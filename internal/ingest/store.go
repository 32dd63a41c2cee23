package ingest

import (
	"context"

	"github.com/alexanderkazanski/ufc-database/internal/store"
	"github.com/alexanderkazanski/ufc-database/internal/store/repository"
)

// RepositoryStore implements Store on top of the postgres repositories.
type RepositoryStore struct {
	events   *repository.EventRepository
	fighters *repository.FighterRepository
	fights   *repository.FightRepository
	rounds   *repository.RoundStatRepository
}

func NewRepositoryStore(db *store.Database) *RepositoryStore {
	return &RepositoryStore{
		events:   repository.NewEventRepository(db),
		fighters: repository.NewFighterRepository(db),
		fights:   repository.NewFightRepository(db),
		rounds:   repository.NewRoundStatRepository(db),
	}
}

func (rs *RepositoryStore) UpsertEvent(ctx context.Context, event *store.Event) (bool, error) {
	return rs.events.Upsert(ctx, event)
}

func (rs *RepositoryStore) UpsertFighter(ctx context.Context, fighter *store.Fighter) (bool, error) {
	return rs.fighters.Upsert(ctx, fighter)
}

func (rs *RepositoryStore) InsertFightPair(ctx context.Context, first, second *store.Fight) error {
	return rs.fights.InsertPair(ctx, first, second)
}

func (rs *RepositoryStore) InsertRoundStat(ctx context.Context, stat *store.RoundStat) error {
	return rs.rounds.Insert(ctx, stat)
}
