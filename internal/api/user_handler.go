package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
)

type UserHandler struct {
	userService domain.UserService
	logger      logger.Logger
}

func NewUserHandler(userService domain.UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/password", h.ChangePassword)

	mux.HandleFunc("GET /api/users/all", h.ListUsers)
	mux.HandleFunc("GET /api/users", h.GetUser)
	mux.HandleFunc("PUT /api/users", h.UpdateProfile)
	mux.HandleFunc("DELETE /api/users", h.DeleteUser)
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	ExperienceLevel string `json:"experience_level"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "isim, e-posta ve şifre zorunludur")
		return
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Password, req.Age, req.Gender, req.ExperienceLevel)
	if err != nil {
		h.logger.Warn("Kayıt isteği başarısız", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		writeServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Yeni kullanıcı kaydedildi", map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "kayıt başarılı",
		User:    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "e-posta ve şifre zorunludur")
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Kullanıcı giriş yaptı", map[string]interface{}{
		"id": user.ID,
	})

	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	ID          int64  `json:"id"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	if req.ID <= 0 || req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "id, mevcut şifre ve yeni şifre zorunludur")
		return
	}

	if err := h.userService.ChangePassword(req.ID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "şifre güncellendi"})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	ExperienceLevel string `json:"experience_level"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.ID <= 0 || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id ve isim zorunludur")
		return
	}

	user, err := h.userService.UpdateProfile(req.ID, req.Name, req.Age, req.Gender, req.ExperienceLevel)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Kullanıcı silindi", map[string]interface{}{"id": id})

	writeJSON(w, http.StatusOK, map[string]string{"message": "kullanıcı silindi"})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if users == nil {
		users = []*domain.User{}
	}

	writeJSON(w, http.StatusOK, users)
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "id parametresi zorunludur")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "geçersiz id parametresi")
		return 0, false
	}

	return id, true
}
