package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomNumber  string  `json:"room_number"  validate:"required,max=20"`
	Type        string  `json:"type"         validate:"required,oneof=single double twin suite family"`
	NightlyRate float64 `json:"nightly_rate" validate:"required,gt=0"`
	Capacity    int     `json:"capacity"     validate:"required,min=1"`
	HasKitchen  bool    `json:"has_kitchen"`
	HasBalcony  bool    `json:"has_balcony"`
	View        string  `json:"view"         validate:"omitempty,oneof=none sea garden city"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	view := model.ViewNone
	if c.View != "" {
		view = c.View
	}

	return model.Room{
		ID:          uuid.NewString(),
		RoomNumber:  c.RoomNumber,
		Type:        c.Type,
		NightlyRate: c.NightlyRate,
		Capacity:    c.Capacity,
		HasKitchen:  c.HasKitchen,
		HasBalcony:  c.HasBalcony,
		View:        view,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNumber  string  `db:"room_number"  json:"room_number"  validate:"omitempty,max=20"`
	Type        string  `db:"type"         json:"type"         validate:"omitempty,oneof=single double twin suite family"`
	NightlyRate float64 `db:"nightly_rate" json:"nightly_rate" validate:"omitempty,gt=0"`
	Capacity    int     `db:"capacity"     json:"capacity"     validate:"omitempty,min=1"`
	HasKitchen  *bool   `db:"has_kitchen"  json:"has_kitchen"  validate:"omitempty"`
	HasBalcony  *bool   `db:"has_balcony"  json:"has_balcony"  validate:"omitempty"`
	View        string  `db:"view"         json:"view"         validate:"omitempty,oneof=none sea garden city"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	RoomNumber  string  `json:"room_number"`
	Type        string  `json:"type"`
	NightlyRate float64 `json:"nightly_rate"`
	Capacity    int     `json:"capacity"`
	HasKitchen  bool    `json:"has_kitchen"`
	HasBalcony  bool    `json:"has_balcony"`
	View        string  `json:"view"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.Type = model.Type
	r.NightlyRate = model.NightlyRate
	r.Capacity = model.Capacity
	r.HasKitchen = model.HasKitchen
	r.HasBalcony = model.HasBalcony
	r.View = model.View
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
