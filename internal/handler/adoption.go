package handler

import (
	"net/http"
	"strconv"

	"github.com/damirpristav/dogs-app-backend/internal/middleware"
	"github.com/damirpristav/dogs-app-backend/internal/service"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdoptionHandler exposes the adoption workflow endpoints.
type AdoptionHandler struct {
	Adoptions *service.AdoptionService
}

func NewAdoptionHandler(adoptions *service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{Adoptions: adoptions}
}

func (h *AdoptionHandler) Adopt(c *gin.Context) {
	animalID, ok := parseID(c, "animalId")
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	adoption, err := h.Adoptions.RequestAdoption(animalID, user)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}

	util.Success(c, "Adoption request successfully created. Admin is notified. Please wait for response!", adoption)
}

func (h *AdoptionHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	adoptions, err := h.Adoptions.ListRequests(user)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.SuccessList(c, len(adoptions), adoptions)
}

func (h *AdoptionHandler) Get(c *gin.Context) {
	adoptionID, ok := parseID(c, "adoptionId")
	if !ok {
		return
	}

	adoption, err := h.Adoptions.GetRequest(adoptionID)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}
	util.Success(c, "", adoption)
}

type updateAdoptionReq struct {
	Progress string `json:"progress"`
}

func (h *AdoptionHandler) Update(c *gin.Context) {
	adoptionID, ok := parseID(c, "adoptionId")
	if !ok {
		return
	}

	var req updateAdoptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	adoption, err := h.Adoptions.Advance(adoptionID, req.Progress)
	if err != nil {
		util.Error(c, service.HTTPStatus(err), service.Message(err))
		return
	}

	util.Success(c, "Adoption \""+adoption.AdoptionFor+" to "+adoption.AdoptionBy+"\" updated!", adoption)
}

// parseID reads a positive integer path parameter and writes a 400 on failure.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id \""+raw+"\".")
		return 0, false
	}
	return uint(id), true
}
