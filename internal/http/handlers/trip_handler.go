// README: Trip handlers for plan/replan/get/list/export and quota usage.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/trips"
	"voyage/internal/types"
)

// QuotaReporter reports how many planning runs a caller has left.
type QuotaReporter interface {
	Usage(ctx context.Context, callerID string) (quota.Usage, error)
}

type TripHandler struct {
	trips *trips.Service
	quota QuotaReporter
}

// NewTripHandler builds the handler; quota may be nil when metering is off.
func NewTripHandler(svc *trips.Service, q QuotaReporter) *TripHandler {
	return &TripHandler{trips: svc, quota: q}
}

func (h *TripHandler) Plan(c *gin.Context) {
	var form tripForm
	if err := c.ShouldBindJSON(&form); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := form.build()
	if err != nil {
		writeTripError(c, err)
		return
	}
	run, err := h.trips.Plan(c.Request.Context(), middleware.CallerUID(c), req)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, run)
}

type replanReq struct {
	Destination string `json:"destination"`
}

func (h *TripHandler) Replan(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid run id")
		return
	}
	var req replanReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Destination == "" {
		writeError(c, http.StatusBadRequest, "destination is required")
		return
	}
	run, err := h.trips.Replan(c.Request.Context(), middleware.CallerUID(c), types.ID(id), req.Destination)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, run)
}

func (h *TripHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid run id")
		return
	}
	run, err := h.trips.Get(c.Request.Context(), middleware.CallerUID(c), types.ID(id))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, run)
}

func (h *TripHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	runs, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c), limit, offset)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"runs": runs})
}

// Itinerary serves the run's markdown as a file download.
func (h *TripHandler) Itinerary(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid run id")
		return
	}
	name, body, err := h.trips.ExportMarkdown(c.Request.Context(), middleware.CallerUID(c), types.ID(id))
	if err != nil {
		writeTripError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(body))
}

func (h *TripHandler) Quota(c *gin.Context) {
	if h.quota == nil {
		writeError(c, http.StatusNotFound, "quota metering disabled")
		return
	}
	usage, err := h.quota.Usage(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, usage)
}
