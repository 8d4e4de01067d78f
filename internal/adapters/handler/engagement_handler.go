package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
	"github.com/google/uuid"
)

const (
	visitorCookie    = "visitor_id"
	visitorCookieAge = 365 * 24 * time.Hour
)

// EngagementHandler serves the registration popup flag and the FAQ bot.
type EngagementHandler struct {
	popupService   ports.PopupService
	chatbotService ports.ChatbotService
}

func NewEngagementHandler(popup ports.PopupService, chatbot ports.ChatbotService) *EngagementHandler {
	return &EngagementHandler{popupService: popup, chatbotService: chatbot}
}

type PopupResponse struct {
	Show bool `json:"show"`
}

// Popup tells the client whether to show the registration popup. Visitors
// are identified by a cookie that is issued on first contact.
func (h *EngagementHandler) Popup(w http.ResponseWriter, r *http.Request) {
	visitorID := ""
	if c, err := r.Cookie(visitorCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			visitorID = c.Value
		}
	}
	if visitorID == "" {
		visitorID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     visitorCookie,
			Value:    visitorID,
			Path:     "/",
			MaxAge:   int(visitorCookieAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	show, err := h.popupService.ShouldShow(r.Context(), visitorID)
	if err != nil {
		log.Printf("popup: seen-state lookup for %s failed: %v", visitorID, err)
	}
	writeJSON(w, http.StatusOK, PopupResponse{Show: show})
}

type ChatRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

func (h *EngagementHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.chatbotService.Reply(req.Question))
}
