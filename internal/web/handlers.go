package web

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/spindleapp/spindle/internal/catalog"
	"github.com/spindleapp/spindle/internal/db"
	"github.com/spindleapp/spindle/internal/discovery"
	"github.com/spindleapp/spindle/internal/spins"
)

// Handlers contains the HTTP handlers for the JSON API.
type Handlers struct {
	auth     *spotifyauth.Authenticator
	sessions *Sessions
	service  *spins.Service
	database *db.DB
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(auth *spotifyauth.Authenticator, sessions *Sessions, service *spins.Service, database *db.DB) *Handlers {
	return &Handlers{
		auth:     auth,
		sessions: sessions,
		service:  service,
		database: database,
	}
}

// Login initiates the Spotify OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateOAuthState()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate state")
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	http.Redirect(w, r, h.auth.AuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing state cookie")
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		respondError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("auth error: %s", errMsg))
		return
	}

	token, err := h.auth.Token(r.Context(), state, r)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to exchange token")
		return
	}

	api := spotify.New(h.auth.Client(r.Context(), token))
	user, err := api.CurrentUser(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get user info")
		return
	}

	if err := h.database.Users().Upsert(r.Context(), &db.User{
		ID:          string(user.ID),
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	session, err := h.sessions.Create(r.Context(), token, string(user.ID), user.DisplayName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.sessions.SetCookie(w, session)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout clears the session (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(r.Context(), session.ID)
	}
	h.sessions.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

type spinRequest struct {
	Mode string `json:"mode"`
}

type albumPayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artist     string   `json:"artist"`
	Year       int      `json:"year,omitempty"`
	CoverURL   string   `json:"coverUrl,omitempty"`
	Genres     []string `json:"genres,omitempty"`
	TrackCount int      `json:"trackCount"`
	AlbumType  string   `json:"albumType"`
}

type spinResponse struct {
	SpinID string       `json:"spinId"`
	Album  albumPayload `json:"album"`
	Mode   string       `json:"mode"`
}

// Spin hands the user an album in the requested mode (POST /api/spin).
func (h *Handlers) Spin(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}

	var req spinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := discovery.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cat := h.catalogClient(r, session)
	result, err := h.service.Spin(r.Context(), cat, session.UserID, mode)
	if err != nil {
		var noCandidates *discovery.NoCandidatesError
		if errors.As(err, &noCandidates) {
			respondError(w, http.StatusNotFound,
				fmt.Sprintf("no albums available for mode %q, try another", noCandidates.Mode))
			return
		}
		respondError(w, http.StatusInternalServerError, "spin failed")
		return
	}

	respondJSON(w, http.StatusCreated, spinResponse{
		SpinID: result.SpinID.String(),
		Album: albumPayload{
			ID:         result.Album.ID,
			Name:       result.Album.Name,
			Artist:     result.Album.Artist,
			Year:       result.Album.Year,
			CoverURL:   result.Album.CoverURL,
			Genres:     result.Album.Genres,
			TrackCount: result.Album.TrackCount,
			AlbumType:  result.Album.AlbumType,
		},
		Mode: string(result.Mode),
	})
}

// Listened confirms a spin was listened to (POST /api/spins/{id}/listened).
func (h *Handlers) Listened(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}

	spinID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid spin id")
		return
	}

	result, err := h.service.Listened(r.Context(), session.UserID, spinID)
	if errors.Is(err, db.ErrNotFound) {
		respondError(w, http.StatusNotFound, "spin not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to confirm listen")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type trackPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
}

// AlbumTracks returns the track list of an album, so the client can show
// what the user is in for (GET /api/albums/{id}/tracks).
func (h *Handlers) AlbumTracks(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}

	albumID := chi.URLParam(r, "id")
	if albumID == "" {
		respondError(w, http.StatusBadRequest, "missing album id")
		return
	}

	cat := h.catalogClient(r, session)
	tracks, err := cat.AlbumTracks(r.Context(), albumID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to load album tracks")
		return
	}

	payload := make([]trackPayload, 0, len(tracks))
	for _, t := range tracks {
		payload = append(payload, trackPayload{ID: t.ID, Name: t.Name, Artist: t.Artist})
	}
	respondJSON(w, http.StatusOK, payload)
}

// Streak returns the user's streak (GET /api/streak).
func (h *Handlers) Streak(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}

	state, err := h.service.Streak(r.Context(), session.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load streak")
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Trophies returns the user's earned trophies (GET /api/trophies).
func (h *Handlers) Trophies(w http.ResponseWriter, r *http.Request) {
	session := h.requireSession(w, r)
	if session == nil {
		return
	}

	earned, err := h.service.Trophies(r.Context(), session.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load trophies")
		return
	}
	if earned == nil {
		earned = []spins.EarnedTrophy{}
	}
	respondJSON(w, http.StatusOK, earned)
}

// requireSession resolves the request session or writes a 401.
func (h *Handlers) requireSession(w http.ResponseWriter, r *http.Request) *Session {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return nil
	}
	return session
}

// catalogClient builds a per-request catalog client bound to the session's
// credential. The oauth2 transport refreshes the token as needed; the
// refreshed token is saved back to the session.
func (h *Handlers) catalogClient(r *http.Request, session *Session) catalog.Client {
	httpClient := h.auth.Client(r.Context(), session.Token)
	api := spotify.New(httpClient, spotify.WithRetry(true))

	if refreshed, err := api.Token(); err == nil && refreshed.AccessToken != session.Token.AccessToken {
		h.sessions.UpdateToken(r.Context(), session.ID, refreshed)
	}

	return catalog.New(api)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
