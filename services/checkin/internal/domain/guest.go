package domain

import "time"

// IDDocumentPrefix marks a recorded (not transferred) identity document.
const IDDocumentPrefix = "uploaded-id-"

type Guest struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PropertyID    string    `json:"property_id"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	MagicToken    string    `json:"magic_token"`
	IDDocumentURL string    `json:"id_document_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateGuestReq struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PropertyID   string `json:"property_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

// ContactPatch carries the guest-editable contact fields. Nil means unchanged.
type ContactPatch struct {
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (p ContactPatch) Empty() bool {
	return p.Phone == nil && p.Email == nil
}

// GuestDTO is the guest as shown to the guest themselves: no magic token.
type GuestDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PropertyID    string `json:"property_id"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
	IDDocumentURL string `json:"id_document_url,omitempty"`
}

func (g Guest) DTO() GuestDTO {
	return GuestDTO{
		ID:            g.ID,
		Name:          g.Name,
		Email:         g.Email,
		Phone:         g.Phone,
		PropertyID:    g.PropertyID,
		CheckInDate:   g.CheckInDate,
		CheckOutDate:  g.CheckOutDate,
		IDDocumentURL: g.IDDocumentURL,
	}
}

func IDDocumentURL(fileName string) string {
	return IDDocumentPrefix + fileName
}

// ReplaceGuest swaps the guest with the same id, keeping its position.
func ReplaceGuest(guests []Guest, updated Guest) ([]Guest, bool) {
	out := make([]Guest, len(guests))
	copy(out, guests)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			return out, true
		}
	}
	return out, false
}

func FindGuest(guests []Guest, id string) (*Guest, bool) {
	for i := range guests {
		if guests[i].ID == id {
			g := guests[i]
			return &g, true
		}
	}
	return nil, false
}
