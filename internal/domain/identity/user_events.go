package identity

import (
	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserCreated = "UserCreated"
	EventTypeUserDeleted = "UserDeleted"
)

// UserCreatedEvent is published when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     UserRole  `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
		Role:            user.Role,
	}
}

// UserDeletedEvent is published when a user is deleted
type UserDeletedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewUserDeletedEvent creates a new UserDeletedEvent
func NewUserDeletedEvent(user *User) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeleted, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
	}
}
