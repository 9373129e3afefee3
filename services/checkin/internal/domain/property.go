package domain

import "time"

type Property struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePropertyReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// FindProperty returns the property with the given id.
func FindProperty(properties []Property, id string) (*Property, bool) {
	for i := range properties {
		if properties[i].ID == id {
			p := properties[i]
			return &p, true
		}
	}
	return nil, false
}
