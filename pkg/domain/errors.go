package domain

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidCapacityError indicates a room capacity below the minimum of one.
type InvalidCapacityError struct {
	Capacity int
}

func (e InvalidCapacityError) Error() string {
	return fmt.Sprintf("capacity must be at least 1, got %d", e.Capacity)
}

// RoomFullError indicates an assignment into a room already at capacity.
type RoomFullError struct {
	RoomID   string
	Capacity int
}

func (e RoomFullError) Error() string {
	return fmt.Sprintf("room %s is fully occupied (capacity %d)", e.RoomID, e.Capacity)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// IsInvalidCapacity reports whether err wraps an InvalidCapacityError.
func IsInvalidCapacity(err error) bool {
	var target InvalidCapacityError
	return errors.As(err, &target)
}

// IsRoomFull reports whether err wraps a RoomFullError.
func IsRoomFull(err error) bool {
	var target RoomFullError
	return errors.As(err, &target)
}
