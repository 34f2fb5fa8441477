package models

// Woreda is a district; Kebeles are its wards. Deleting a woreda cascades
// to its kebeles at the storage layer.
type Woreda struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Kebeles []Kebele `json:"kebeles,omitempty"`
}

type Kebele struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	WoredaID int    `json:"woreda_id"`
}
