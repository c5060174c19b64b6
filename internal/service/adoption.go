package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/damirpristav/dogs-app-backend/internal/mailer"
	"github.com/damirpristav/dogs-app-backend/internal/models"

	"gorm.io/gorm"
)

// AdoptionService drives the adoption state machine. It is the sole writer
// of Animal.Active and Animal.AdoptionStatus and keeps them in sync with
// the active request's progress.
type AdoptionService struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewAdoptionService(db *gorm.DB, m mailer.Mailer) *AdoptionService {
	return &AdoptionService{DB: db, Mailer: m}
}

// allowedTransitions is the forward-only transition table. Terminal states
// admit nothing; same-state transitions are handled as re-entrant no-ops
// before the table is consulted.
var allowedTransitions = map[string][]string{
	models.ProgressInProgress: {models.ProgressVisit, models.ProgressCompleted, models.ProgressCanceled},
	models.ProgressVisit:      {models.ProgressCompleted, models.ProgressCanceled},
	models.ProgressCompleted:  {},
	models.ProgressCanceled:   {},
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// RequestAdoption reserves an animal for the requester. The availability
// check and the reservation are one conditional UPDATE inside a
// transaction, so two concurrent requests for the same animal cannot both
// succeed: the loser observes zero affected rows and gets a conflict.
// All admins receive an in-app notification; the admin email is
// fire-and-forget.
func (s *AdoptionService) RequestAdoption(animalID uint, requester *models.User) (*models.Adoption, error) {
	var adoption models.Adoption
	var adminEmails []string

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Animal{}).
			Where("id = ? AND active = ? AND adoption_status = ?", animalID, true, models.AdoptionStatusNone).
			Updates(map[string]interface{}{
				"active":          false,
				"adoption_status": models.AdoptionStatusInProgress,
			})
		if res.Error != nil {
			return Internal("Failed to reserve animal.", res.Error)
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.Animal{}).Where("id = ?", animalID).Count(&exists).Error; err != nil {
				return Internal("Failed to look up animal.", err)
			}
			if exists == 0 {
				return NotFound("Animal with this id does not exist!")
			}
			return Conflict("This animal cannot be adopted because adoption is already in progress or is already adopted.")
		}

		var animal models.Animal
		if err := tx.First(&animal, animalID).Error; err != nil {
			return Internal("Failed to load animal.", err)
		}

		adoption = models.Adoption{
			AnimalID:    animal.ID,
			UserID:      requester.ID,
			Progress:    models.ProgressInProgress,
			AdoptionFor: animal.Name,
			AdoptionBy:  requester.FullName(),
		}
		if err := tx.Create(&adoption).Error; err != nil {
			return Internal("Failed to create adoption request.", err)
		}

		var admins []models.User
		if err := tx.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
			return Internal("Failed to load admins.", err)
		}
		adminIDs := make([]uint, 0, len(admins))
		for _, a := range admins {
			adminIDs = append(adminIDs, a.ID)
			adminEmails = append(adminEmails, a.Email)
		}

		subject := "New adoption request"
		message := fmt.Sprintf("User %s wants to adopt %s!", requester.FullName(), animal.Name)
		if err := createNotification(tx, subject, message, adminIDs); err != nil {
			return err
		}

		adoption.Animal = animal
		adoption.User = *requester
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(adminEmails) > 0 {
		mailErr := s.Mailer.Send(mailer.Message{
			Template: mailer.TemplateNewAdoption,
			Subject:  "New adoption request",
			To:       adminEmails,
			Name:     requester.FullName(),
			Animal:   adoption.AdoptionFor,
		})
		if mailErr != nil {
			log.Printf("adoption mail to admins failed: %v", mailErr)
		}
	}

	return &adoption, nil
}

// Advance moves a request to newProgress and applies the matching side
// effects to the animal and the requester's notifications. Transitions not
// in the table are rejected; repeating the current state is a no-op.
func (s *AdoptionService) Advance(requestID uint, newProgress string) (*models.Adoption, error) {
	if !models.ValidProgress(newProgress) {
		return nil, Validation(fmt.Sprintf("%q is not a valid adoption progress.", newProgress))
	}

	var adoption models.Adoption
	err := s.DB.Preload("Animal").Preload("User").First(&adoption, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Adoption with this id cannot be found!")
		}
		return nil, Internal("Failed to load adoption.", err)
	}

	if adoption.Progress == newProgress {
		return &adoption, nil
	}
	if !transitionAllowed(adoption.Progress, newProgress) {
		return nil, Validation(fmt.Sprintf("Cannot change adoption progress from %q to %q.", adoption.Progress, newProgress))
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&adoption).Update("progress", newProgress).Error; err != nil {
			return Internal("Failed to update adoption.", err)
		}

		var subject, message string
		animalUpdates := map[string]interface{}{}

		switch newProgress {
		case models.ProgressCompleted:
			subject = "Adoption Completed"
			message = fmt.Sprintf("You have successfully adopted %s!", adoption.AdoptionFor)
			animalUpdates["active"] = false
			animalUpdates["adoption_status"] = models.AdoptionStatusAdopted
		case models.ProgressVisit:
			subject = "Visit arranged"
			message = fmt.Sprintf("You can now visit %s!", adoption.AdoptionFor)
			animalUpdates["active"] = false
			animalUpdates["adoption_status"] = models.AdoptionStatusVisit
		case models.ProgressCanceled:
			subject = "Adoption Canceled"
			message = fmt.Sprintf("Your request to adopt %s was canceled!", adoption.AdoptionFor)
			// canceling frees the animal for new requests
			animalUpdates["active"] = true
			animalUpdates["adoption_status"] = models.AdoptionStatusNone
		}

		if err := tx.Model(&models.Animal{}).Where("id = ?", adoption.AnimalID).
			Updates(animalUpdates).Error; err != nil {
			return Internal("Failed to update animal.", err)
		}
		if err := tx.First(&adoption.Animal, adoption.AnimalID).Error; err != nil {
			return Internal("Failed to load animal.", err)
		}

		return createNotification(tx, subject, message, []uint{adoption.UserID})
	})
	if err != nil {
		return nil, err
	}

	adoption.Progress = newProgress
	return &adoption, nil
}

// GetRequest returns a single adoption request with its animal and user.
func (s *AdoptionService) GetRequest(requestID uint) (*models.Adoption, error) {
	var adoption models.Adoption
	err := s.DB.Preload("Animal").Preload("User").First(&adoption, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Adoption with this id cannot be found!")
		}
		return nil, Internal("Failed to load adoption.", err)
	}
	return &adoption, nil
}

// ListRequests returns adoption requests in creation order. Admins see all
// requests, other users only their own.
func (s *AdoptionService) ListRequests(identity *models.User) ([]models.Adoption, error) {
	q := s.DB.Preload("Animal").Preload("User").Order("created_at, id")
	if identity.Role != models.RoleAdmin {
		q = q.Where("user_id = ?", identity.ID)
	}

	var adoptions []models.Adoption
	if err := q.Find(&adoptions).Error; err != nil {
		return nil, Internal("Failed to list adoptions.", err)
	}
	return adoptions, nil
}

func createNotification(tx *gorm.DB, subject, message string, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	n := models.Notification{Subject: subject, Message: message}
	if err := tx.Create(&n).Error; err != nil {
		return Internal("Failed to create notification.", err)
	}
	recipients := make([]models.NotificationRecipient, 0, len(userIDs))
	for _, id := range userIDs {
		recipients = append(recipients, models.NotificationRecipient{NotificationID: n.ID, UserID: id})
	}
	if err := tx.Create(&recipients).Error; err != nil {
		return Internal("Failed to create notification recipients.", err)
	}
	return nil
}
