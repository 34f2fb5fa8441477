package models

import "time"

// Farmer types accepted by the registry.
const (
	FarmerSmallholder = "Smallholder"
	FarmerCommercial  = "Commercial"
	FarmerLargeScale  = "Large Scale"
	FarmerSubsistence = "Subsistence"
)

// Farmer is a single survey record. Woreda and Kebele are stored by name,
// denormalized at registration time.
type Farmer struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	FarmerType   string    `json:"farmer_type,omitempty"` // Smallholder | Commercial | Large Scale | Subsistence
	Woreda       string    `json:"woreda,omitempty"`
	Kebele       string    `json:"kebele"`
	Phone        string    `json:"phone,omitempty"`
	AudioURL     string    `json:"audio_url,omitempty"` // /media/... path, set after upload
	RegisteredBy string    `json:"registered_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
