package handler

import (
	"net/http"
	"strconv"
	"time"

	"eventpulse/internal/model"
	"eventpulse/internal/service"
)

// Nearby handles GET /events/nearby?lat=&lon=&radius=
// lat and lon are required; radius defaults to 10 km.
func (h *EventHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lon are required numbers")
		return
	}

	radius := service.DefaultRadiusKm
	if raw := q.Get("radius"); raw != "" {
		var err error
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "radius must be a number")
			return
		}
	}

	center := model.GeoPoint{Latitude: lat, Longitude: lon}
	results, err := h.discovery.Nearby(r.Context(), center, radius, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if results == nil {
		results = []model.EventDistance{}
	}
	writeJSON(w, http.StatusOK, results)
}

// Trending handles GET /events/trending?n=
// n defaults to 3.
func (h *EventHandler) Trending(w http.ResponseWriter, r *http.Request) {
	topN := service.DefaultTrendingN
	if raw := r.URL.Query().Get("n"); raw != "" {
		var err error
		topN, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "n must be an integer")
			return
		}
	}

	events, err := h.discovery.Trending(r.Context(), topN)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
