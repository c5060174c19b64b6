package handler

import (
	"errors"
	"net/http"

	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnimalHandler is the minimal catalog surface: admin-managed records,
// publicly readable. Availability fields are owned by the adoption
// workflow and never written here.
type AnimalHandler struct {
	DB *gorm.DB
}

func NewAnimalHandler(db *gorm.DB) *AnimalHandler {
	return &AnimalHandler{DB: db}
}

type animalReq struct {
	Name         string `json:"name" binding:"required"`
	Breed        string `json:"breed"`
	Gender       string `json:"gender"`
	Age          string `json:"age"`
	Size         string `json:"size"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Trained      bool   `json:"trained"`
	GoodWithDogs bool   `json:"goodWithDogs"`
	GoodWithCats bool   `json:"goodWithCats"`
}

func (h *AnimalHandler) Create(c *gin.Context) {
	var req animalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Name is required.")
		return
	}

	animal := models.Animal{
		Name:           req.Name,
		Breed:          req.Breed,
		Gender:         req.Gender,
		Age:            req.Age,
		Size:           req.Size,
		Description:    req.Description,
		Location:       req.Location,
		Trained:        req.Trained,
		GoodWithDogs:   req.GoodWithDogs,
		GoodWithCats:   req.GoodWithCats,
		Active:         true,
		AdoptionStatus: models.AdoptionStatusNone,
	}
	if err := h.DB.Create(&animal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create animal.")
		return
	}
	util.Success(c, "Animal created!", animal)
}

func (h *AnimalHandler) List(c *gin.Context) {
	var animals []models.Animal
	if err := h.DB.Order("created_at, id").Find(&animals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to list animals.")
		return
	}
	util.SuccessList(c, len(animals), animals)
}

func (h *AnimalHandler) Get(c *gin.Context) {
	animalID, ok := parseID(c, "animalId")
	if !ok {
		return
	}

	var animal models.Animal
	if err := h.DB.First(&animal, animalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Animal with this id does not exist!")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load animal.")
		}
		return
	}
	util.Success(c, "", animal)
}

func (h *AnimalHandler) Update(c *gin.Context) {
	animalID, ok := parseID(c, "animalId")
	if !ok {
		return
	}

	var animal models.Animal
	if err := h.DB.First(&animal, animalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, "Animal with this id does not exist!")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to load animal.")
		}
		return
	}

	var req animalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Name is required.")
		return
	}

	// descriptive fields only; active/adoption_status belong to the workflow
	updates := map[string]interface{}{
		"name":           req.Name,
		"breed":          req.Breed,
		"gender":         req.Gender,
		"age":            req.Age,
		"size":           req.Size,
		"description":    req.Description,
		"location":       req.Location,
		"trained":        req.Trained,
		"good_with_dogs": req.GoodWithDogs,
		"good_with_cats": req.GoodWithCats,
	}
	if err := h.DB.Model(&animal).Updates(updates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to update animal.")
		return
	}
	if err := h.DB.First(&animal, animalID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to load animal.")
		return
	}
	util.Success(c, "Animal updated!", animal)
}

func (h *AnimalHandler) Delete(c *gin.Context) {
	animalID, ok := parseID(c, "animalId")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Animal{}, animalID)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to delete animal.")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Animal with this id does not exist!")
		return
	}
	util.Success(c, "Animal deleted!", nil)
}
