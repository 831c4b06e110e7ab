// README: Traveler profile handlers (read, additive update).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atlas/internal/modules/profile"
)

type ProfileHandler struct {
	profiles *profile.Service
}

func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: svc}
}

// Get handles GET /api/users/:id/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing user id")
		return
	}
	p, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

type updateProfileReq struct {
	HomeCity            string   `json:"home_city"`
	PreferredCabinClass string   `json:"preferred_cabin_class"`
	Currency            string   `json:"currency"`
	Interests           []string `json:"interests"`
	TravelStyle         string   `json:"travel_style"`
}

// Update handles PUT /api/users/:id/profile. Updates are additive: empty
// fields leave the stored value alone.
func (h *ProfileHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing user id")
		return
	}
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.profiles.Update(c.Request.Context(), id, profile.Profile{
		HomeCity:            strings.TrimSpace(req.HomeCity),
		PreferredCabinClass: strings.ToLower(strings.TrimSpace(req.PreferredCabinClass)),
		Currency:            strings.ToUpper(strings.TrimSpace(req.Currency)),
		Interests:           req.Interests,
		TravelStyle:         strings.TrimSpace(req.TravelStyle),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
