package models

import "time"

// Adoption request progress states. ProgressInProgress is initial,
// ProgressCompleted and ProgressCanceled are terminal.
const (
	ProgressInProgress = "in progress"
	ProgressVisit      = "visit"
	ProgressCompleted  = "completed"
	ProgressCanceled   = "canceled"
)

// ValidProgress reports whether p is one of the recognized progress values.
func ValidProgress(p string) bool {
	switch p {
	case ProgressInProgress, ProgressVisit, ProgressCompleted, ProgressCanceled:
		return true
	}
	return false
}

// Adoption is a request by one user to adopt one animal. At most one
// adoption per animal may be active (progress not terminal) at any time.
// AdoptionFor/AdoptionBy are denormalized display names.
type Adoption struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AnimalID    uint   `gorm:"index;not null" json:"animalId"`
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Progress    string `gorm:"size:16;not null;default:in progress" json:"progress"`
	AdoptionFor string `gorm:"size:64" json:"adoptionFor"`
	AdoptionBy  string `gorm:"size:128" json:"adoptionBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	Animal Animal `gorm:"constraint:OnDelete:CASCADE" json:"animal"`
	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"user"`
}
