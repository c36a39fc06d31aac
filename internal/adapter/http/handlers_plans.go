package adapthttp

import (
	"errors"
	"net/http"

	"fitplan/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	plans, err := s.planSvc.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	plan, err := s.planSvc.GetDay(r.Context(), user.ID, mux.Vars(r)["day"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Exercises []domain.Exercise `json:"exercises"`
		Meals     []domain.Meal     `json:"meals"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Exercises == nil || req.Meals == nil {
		writeError(w, http.StatusBadRequest, errors.New("exercises and meals are required"))
		return
	}

	plan, err := s.planSvc.UpdateDay(r.Context(), user.ID, mux.Vars(r)["day"], req.Exercises, req.Meals)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleToggleExercise(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	vars := mux.Vars(r)
	plan, err := s.planSvc.ToggleExercise(r.Context(), user.ID, vars["day"], vars["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleToggleMeal(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	vars := mux.Vars(r)
	plan, err := s.planSvc.ToggleMeal(r.Context(), user.ID, vars["day"], vars["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
