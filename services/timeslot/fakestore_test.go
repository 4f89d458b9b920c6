package timeslot

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rideconnect/models"
)

// memStore is an in-memory slot store with the same uniqueness rule as the Mongo index.
type memStore struct {
	mu      sync.Mutex
	slots   map[string]models.TimeSlot
	inserts int
	findErr error
	// honorCtx makes InsertMany fail on a done context like the Mongo driver does.
	honorCtx bool
}

func newMemStore() *memStore {
	return &memStore{slots: map[string]models.TimeSlot{}}
}

func (s *memStore) clash(slot models.TimeSlot) bool {
	for _, existing := range s.slots {
		if existing.ID != slot.ID && existing.Date == slot.Date &&
			existing.StartTime == slot.StartTime && existing.EndTime == slot.EndTime {
			return true
		}
	}
	return false
}

func (s *memStore) FindByDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := []models.TimeSlot{}
	for _, slot := range s.slots {
		if slot.Date == date {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].EndTime < out[j].EndTime
	})
	return out, nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &slot, nil
}

func (s *memStore) Insert(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(slot)
}

func (s *memStore) insertLocked(slot models.TimeSlot) (*models.TimeSlot, error) {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if s.clash(slot) {
		return nil, ErrDuplicate
	}
	s.inserts++
	s.slots[slot.ID] = slot
	return &slot, nil
}

func (s *memStore) InsertMany(ctx context.Context, slots []models.TimeSlot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.honorCtx && ctx.Err() != nil {
		return 0, ctx.Err()
	}
	n := 0
	for _, slot := range slots {
		_, err := s.insertLocked(slot)
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *memStore) Update(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[id]
	if !ok {
		return nil, ErrNotFound
	}
	if upd.Date != nil {
		slot.Date = *upd.Date
	}
	if upd.StartTime != nil {
		slot.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		slot.EndTime = *upd.EndTime
	}
	if upd.IsAvailable != nil {
		slot.IsAvailable = *upd.IsAvailable
	}
	if s.clash(slot) {
		return nil, ErrDuplicate
	}
	s.slots[id] = slot
	return &slot, nil
}

func (s *memStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[id]; !ok {
		return false, nil
	}
	delete(s.slots, id)
	return true, nil
}

func (s *memStore) EnsureIndexes(ctx context.Context) error { return nil }
