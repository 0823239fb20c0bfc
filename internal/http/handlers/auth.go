package handlers

import (
	"net/http"

	"crestgold_backend/internal/ledger"
	"crestgold_backend/internal/logger"
	"crestgold_backend/internal/service"
	"crestgold_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// Auth mints a fresh miner session and its token. Identity is an opaque
// generated id; there is no credential exchange on the miner side.
func (h *Handler) Auth(c *gin.Context) {
	s := h.Store.Create()

	// cosmetic note events go out on the session's live feed
	sid := s.ID
	s.Notes.OnSpawn = func(n ledger.Note) {
		h.Hub.SendTo(sid, ws.NoteEvent(n))
	}
	s.Notes.OnExpire = func(id int64) {
		h.Hub.SendTo(sid, ws.Marshal(ws.EventNoteExpire, ws.NoteExpirePayload{ID: id}))
	}

	token, err := service.GenerateToken(s.ID, service.RoleMiner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	logger.Info("session started", "session", s.ID)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         s.ID,
			"created_at": s.CreatedAt,
		},
	})
}
