package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/studio-scheduler/internal/application"
	"github.com/example/studio-scheduler/internal/persistence"
)

// RoomRepository stores streaming rooms under the room: prefix.
type RoomRepository struct {
	store persistence.RecordStore
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(store persistence.RecordStore) *RoomRepository {
	return &RoomRepository{store: store}
}

func roomKey(id string) string {
	return persistence.KeyPrefixRoom + id
}

func roomToRecord(room application.Room) persistence.RoomRecord {
	return persistence.RoomRecord{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		IsActive:    room.IsActive,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

func roomFromRecord(rec persistence.RoomRecord) application.Room {
	return application.Room{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		IsActive:    rec.IsActive,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// CreateRoom stores a new room.
func (r *RoomRepository) CreateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if err := r.put(ctx, room); err != nil {
		return application.Room{}, err
	}
	return room, nil
}

// GetRoom returns the room with the given ID.
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (application.Room, error) {
	value, err := r.store.Get(ctx, roomKey(id))
	if err != nil {
		return application.Room{}, err
	}
	var rec persistence.RoomRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return application.Room{}, fmt.Errorf("failed to decode room record: %w", err)
	}
	return roomFromRecord(rec), nil
}

// UpdateRoom replaces the stored room.
func (r *RoomRepository) UpdateRoom(ctx context.Context, room application.Room) (application.Room, error) {
	if _, err := r.GetRoom(ctx, room.ID); err != nil {
		return application.Room{}, err
	}
	if err := r.put(ctx, room); err != nil {
		return application.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes the room with the given ID.
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	return r.store.Delete(ctx, roomKey(id))
}

// ListRooms returns every stored room.
func (r *RoomRepository) ListRooms(ctx context.Context) ([]application.Room, error) {
	stored, err := r.store.ListByPrefix(ctx, persistence.KeyPrefixRoom)
	if err != nil {
		return nil, err
	}
	rooms := make([]application.Room, 0, len(stored))
	for _, item := range stored {
		var rec persistence.RoomRecord
		if err := json.Unmarshal(item.Value, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode room record %s: %w", item.Key, err)
		}
		rooms = append(rooms, roomFromRecord(rec))
	}
	return rooms, nil
}

func (r *RoomRepository) put(ctx context.Context, room application.Room) error {
	value, err := json.Marshal(roomToRecord(room))
	if err != nil {
		return fmt.Errorf("failed to encode room: %w", err)
	}
	return r.store.Put(ctx, roomKey(room.ID), value)
}
