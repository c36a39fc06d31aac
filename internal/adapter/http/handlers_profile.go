package adapthttp

import (
	"net/http"

	"fitplan/internal/domain"
)

type profileRequest struct {
	Name          string               `json:"name"`
	Age           *int                 `json:"age"`
	Gender        *string              `json:"gender"`
	Height        *float64             `json:"height"`
	Weight        *float64             `json:"weight"`
	Goal          domain.Goal          `json:"goal"`
	FitnessGoal   domain.Goal          `json:"fitness_goal"`
	ActivityLevel domain.ActivityLevel `json:"activity_level"`
}

func (req profileRequest) toProfile() domain.Profile {
	goal := req.Goal
	if goal == "" {
		goal = req.FitnessGoal
	}
	return domain.Profile{
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		HeightCm:      req.Height,
		WeightKg:      req.Weight,
		Goal:          goal,
		ActivityLevel: req.ActivityLevel,
	}
}

type profileResponse struct {
	*domain.Profile
	Email string `json:"email,omitempty"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	p, err := s.profileSvc.Get(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, Email: user.Email})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req profileRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.profileSvc.Update(r.Context(), user.ID, req.toProfile())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, Email: user.Email})
}

func (s *Server) handleRegeneratePlans(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if err := s.planSvc.Regenerate(r.Context(), user.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Plans regenerated successfully"})
}
