package restaurant

import (
	"context"
	"fmt"
	"log/slog"

	"restaurantlisting/internal/logger"
)

// Service — доменный слой между транспортом и Store.
// Всё, что уходит из Store наружу, проходит через ToDto; всё, что приходит, — через ToEntity.
type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{store: store, log: log}
}

func (s *Service) ListRestaurants(ctx context.Context) ([]Dto, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return ToDtos(list), nil
}

// AddRestaurant сохраняет новый ресторан. Присланный клиентом id игнорируется:
// идентификатор всегда назначает хранилище.
func (s *Service) AddRestaurant(ctx context.Context, d Dto) (Dto, error) {
	e := ToEntity(d)
	if e.ID != 0 {
		s.log.Debug("restaurant.add.client_id_ignored", "id", e.ID)
		e.ID = 0
	}
	saved, err := s.store.Save(ctx, e)
	if err != nil {
		return Dto{}, fmt.Errorf("add restaurant: %w", err)
	}
	s.log.Info("restaurant.added", "id", saved.ID, "name", saved.Name)
	return ToDto(saved), nil
}

func (s *Service) FetchRestaurant(ctx context.Context, id int64) (Lookup, error) {
	r, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return NotFound(), fmt.Errorf("fetch restaurant %d: %w", id, err)
	}
	if !ok {
		return NotFound(), nil
	}
	return Found(ToDto(r)), nil
}
