package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/domain/holiday"
	"github.com/ekaramchari/hr-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayRepo holiday.Repository
	location    *time.Location
}

func NewHolidayHandler(holidayRepo holiday.Repository, location *time.Location) HolidayHandler {
	return &holidayHandlerImpl{
		holidayRepo: holidayRepo,
		location:    location,
	}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := time.Now().In(h.location).Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 2000 || parsed > 2100 {
			response.BadRequest(w, "year must be a valid four-digit year", nil)
			return
		}
		year = parsed
	}

	holidays, err := h.holidayRepo.ListForYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"holidays": holidays,
		"year":     year,
	})
}
