// Package domain holds shared domain primitives: strongly typed entity
// identifiers used across modules. Wrapping uuid.UUID per entity keeps a
// BoardID from being passed where a CardID is expected.
package domain

import "github.com/google/uuid"

type (
	// BoardID identifies a board aggregate.
	BoardID uuid.UUID
	// ListID identifies a list within a board.
	ListID uuid.UUID
	// CardID identifies a card within a list.
	CardID uuid.UUID
	// UserID identifies a user account.
	UserID uuid.UUID
	// LogID identifies a board action log entry.
	LogID uuid.UUID
)

// NewBoardID returns a fresh random BoardID.
func NewBoardID() BoardID { return BoardID(uuid.New()) }

// NewListID returns a fresh random ListID.
func NewListID() ListID { return ListID(uuid.New()) }

// NewCardID returns a fresh random CardID.
func NewCardID() CardID { return CardID(uuid.New()) }

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewLogID returns a fresh random LogID.
func NewLogID() LogID { return LogID(uuid.New()) }

func (id BoardID) String() string { return uuid.UUID(id).String() }
func (id ListID) String() string  { return uuid.UUID(id).String() }
func (id CardID) String() string  { return uuid.UUID(id).String() }
func (id UserID) String() string  { return uuid.UUID(id).String() }
func (id LogID) String() string   { return uuid.UUID(id).String() }

func (id BoardID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ListID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id CardID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id LogID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// MarshalText/UnmarshalText make the typed ids transparent in JSON payloads
// and map keys.

func (id BoardID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ListID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id CardID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id LogID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *BoardID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ListID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CardID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UserID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *LogID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseBoardID parses a board id from its string form.
func ParseBoardID(s string) (BoardID, error) {
	u, err := uuid.Parse(s)
	return BoardID(u), err
}

// ParseListID parses a list id from its string form.
func ParseListID(s string) (ListID, error) {
	u, err := uuid.Parse(s)
	return ListID(u), err
}

// ParseCardID parses a card id from its string form.
func ParseCardID(s string) (CardID, error) {
	u, err := uuid.Parse(s)
	return CardID(u), err
}

// ParseUserID parses a user id from its string form.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	return UserID(u), err
}
