package session

import (
	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/google/uuid"
)

// UpdateRequest carries the fields a client changed. Absent fields are left
// alone.
type UpdateRequest struct {
	Amount *string `json:"amount" validate:"omitempty,max=64"`
	From   *string `json:"from" validate:"omitempty,len=3"`
	To     *string `json:"to" validate:"omitempty,len=3"`
}

// SessionResponse is a view snapshot as returned by every session route.
type SessionResponse struct {
	ID      uuid.UUID         `json:"id" swaggertype:"string" format:"uuid"`
	State   converter.State   `json:"state"`
	Display converter.Display `json:"display"`
	Pending bool              `json:"pending"`
}

func ToResponse(id uuid.UUID, v *converter.View) SessionResponse {
	s := v.State()
	return SessionResponse{
		ID:      id,
		State:   s,
		Display: converter.Render(s),
		Pending: v.Pending(),
	}
}
