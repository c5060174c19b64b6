package models

import "time"

// Animal adoption statuses. The adoption workflow is the only writer of
// Active and AdoptionStatus.
const (
	AdoptionStatusNone       = "none"
	AdoptionStatusInProgress = "in progress"
	AdoptionStatusAdopted    = "adopted"
	AdoptionStatusVisit      = "visit arranged"
	AdoptionStatusCanceled   = "canceled"
)

// Animal represents an adoptable animal. Active marks it bookable; adopted
// animals are deactivated instead of deleted so they stay in the database.
type Animal struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:64;not null" json:"name"`
	Breed          string `gorm:"size:64" json:"breed"`
	Gender         string `gorm:"size:16" json:"gender"`
	Age            string `gorm:"size:32" json:"age"`
	Size           string `gorm:"size:16" json:"size"`
	Description    string `gorm:"type:text" json:"description"`
	Location       string `gorm:"size:128" json:"location"`
	Trained        bool   `gorm:"not null;default:false" json:"trained"`
	GoodWithDogs   bool   `gorm:"not null;default:false" json:"goodWithDogs"`
	GoodWithCats   bool   `gorm:"not null;default:false" json:"goodWithCats"`
	Active         bool   `gorm:"not null;default:true" json:"active"`
	AdoptionStatus string `gorm:"size:16;not null;default:none" json:"adoptionStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
