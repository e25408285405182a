package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldRoomNumber  = "room_number"
	FieldType        = "type"
	FieldNightlyRate = "nightly_rate"
	FieldCapacity    = "capacity"
	FieldHasKitchen  = "has_kitchen"
	FieldHasBalcony  = "has_balcony"
	FieldView        = "view"

	TypeSingle = "single"
	TypeDouble = "double"
	TypeTwin   = "twin"
	TypeSuite  = "suite"
	TypeFamily = "family"

	ViewNone   = "none"
	ViewSea    = "sea"
	ViewGarden = "garden"
	ViewCity   = "city"
)

// Room has no stored availability flag. Whether a room is free for a date
// range is derived from the reservations that reference it.
type Room struct {
	ID          string  `db:"id"`
	RoomNumber  string  `db:"room_number"`
	Type        string  `db:"type"`
	NightlyRate float64 `db:"nightly_rate"`
	Capacity    int     `db:"capacity"`
	HasKitchen  bool    `db:"has_kitchen"`
	HasBalcony  bool    `db:"has_balcony"`
	View        string  `db:"view"`
	model.Metadata
}
