// README: Search handlers for the detailed flight/hotel views and the overview.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/search"
)

type SearchHandler struct {
	search *search.Service
}

func NewSearchHandler(svc *search.Service) *SearchHandler {
	return &SearchHandler{search: svc}
}

type flightSearchReq struct {
	Query  search.FlightQuery  `json:"query"`
	Filter search.FlightFilter `json:"filter"`
}

func (h *SearchHandler) Flights(c *gin.Context) {
	var req flightSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := h.search.Flights(c.Request.Context(), req.Query, req.Filter)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

type hotelSearchReq struct {
	Query  search.HotelQuery  `json:"query"`
	Filter search.HotelFilter `json:"filter"`
}

func (h *SearchHandler) Hotels(c *gin.Context) {
	var req hotelSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query.Adults <= 0 {
		req.Query.Adults = 1
	}
	view, err := h.search.Hotels(c.Request.Context(), req.Query, req.Filter)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, view)
}

// Overview takes the trip request as query parameters.
func (h *SearchHandler) Overview(c *gin.Context) {
	var form tripForm
	if err := c.ShouldBindQuery(&form); err != nil {
		writeError(c, http.StatusBadRequest, "invalid query")
		return
	}
	req, err := form.build()
	if err != nil {
		writeTripError(c, err)
		return
	}
	if req.Destination == "" || req.Departure == "" {
		writeError(c, http.StatusBadRequest, "destination and departure are required")
		return
	}
	ov, err := h.search.Overview(c.Request.Context(), req)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ov)
}
