package handlers

import (
	"net/http"
	"time"

	"squadfinder_backend/db"
	"squadfinder_backend/engine"
	"squadfinder_backend/middleware"
	"squadfinder_backend/models"
	"squadfinder_backend/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SquadHandler struct {
	store  db.Store
	engine *engine.Engine
	log    *zap.Logger
}

func NewSquadHandler(store db.Store, eng *engine.Engine, log *zap.Logger) *SquadHandler {
	return &SquadHandler{store: store, engine: eng, log: log}
}

// GetSquads serves the filtered view over the sync engine's snapshot. The
// mutations below never touch that snapshot; they rely on the change
// notification to refresh it.
func (h *SquadHandler) GetSquads(c *gin.Context) {
	var filters models.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filters.Discipline == "" {
		filters.Discipline = models.DisciplineAll
	}

	squads, ready := h.engine.Snapshot()
	state := "ready"
	if !ready {
		state = "loading"
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  state,
		"squads": view.Apply(squads, filters, time.Now()),
	})
}

// CreateSquad validates the draft and inserts it, attributed to the session
// identity when one exists. The response is optimistic: it switches the
// caller to the browse view and the new row shows up on the next reload.
func (h *SquadHandler) CreateSquad(c *gin.Context) {
	var draft models.SquadDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := draft.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	id, err := h.store.InsertSquad(c.Request.Context(), draft, middleware.SessionEmail(c))
	if err != nil {
		h.log.Error("failed to insert squad", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": models.ErrorStatus("Couldn't post your squad. Try again."),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     id,
		"view":   "browse",
		"status": models.SuccessStatus("Squad posted. See you on the line!"),
	})
}

// JoinSquad adds a member row. Capacity is advisory: the UI disables joining
// a full squad but the write path does not enforce it.
func (h *SquadHandler) JoinSquad(c *gin.Context) {
	squadID := c.Param("id")

	var join models.MemberJoin
	if err := c.ShouldBindJSON(&join); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if errs := join.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if _, ok := h.engine.Get(squadID); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status": models.ErrorStatus("That squad is gone."),
		})
		return
	}

	if err := h.store.InsertMember(c.Request.Context(), squadID, join); err != nil {
		h.log.Error("failed to insert member", zap.String("squadID", squadID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": models.ErrorStatus("Couldn't join the squad. Try again."),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": models.SuccessStatus("You're on the squad!"),
	})
}

type pinRequest struct {
	PIN string `json:"pin"`
}

// UnlockSquad is the startEdit gate: a matching PIN returns the squad
// prefilled for editing. The comparison happens against the in-memory copy;
// no request reaches the store.
func (h *SquadHandler) UnlockSquad(c *gin.Context) {
	squad, ok := h.gatePIN(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"squad": editable(squad)})
}

// UpdateSquad writes every mutable field. The id, members, creation
// timestamp and leader PIN never change.
func (h *SquadHandler) UpdateSquad(c *gin.Context) {
	var req struct {
		PIN   string            `json:"pin"`
		Squad models.SquadDraft `json:"squad"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	squadID := c.Param("id")
	squad, ok := h.engine.Get(squadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status": models.ErrorStatus("That squad is gone."),
		})
		return
	}
	if squad.LeaderPIN != req.PIN {
		c.JSON(http.StatusForbidden, gin.H{
			"status": models.ErrorStatus("Incorrect PIN"),
		})
		return
	}

	if errs := req.Squad.ValidateUpdate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := h.store.UpdateSquad(c.Request.Context(), squadID, req.Squad); err != nil {
		h.log.Error("failed to update squad", zap.String("squadID", squadID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": models.ErrorStatus("Couldn't save your changes. Try again."),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":   "browse",
		"status": models.SuccessStatus("Squad updated."),
	})
}

// DeleteSquad deletes by id after the PIN gate.
func (h *SquadHandler) DeleteSquad(c *gin.Context) {
	squad, ok := h.gatePIN(c)
	if !ok {
		return
	}

	if err := h.store.DeleteSquad(c.Request.Context(), squad.ID); err != nil {
		h.log.Error("failed to delete squad", zap.String("squadID", squad.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": models.ErrorStatus("Couldn't delete the squad. Try again."),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": models.SuccessStatus("Squad deleted."),
	})
}

func (h *SquadHandler) gatePIN(c *gin.Context) (models.Squad, bool) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Squad{}, false
	}

	squad, ok := h.engine.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status": models.ErrorStatus("That squad is gone."),
		})
		return models.Squad{}, false
	}

	if squad.LeaderPIN != req.PIN {
		c.JSON(http.StatusForbidden, gin.H{
			"status": models.ErrorStatus("Incorrect PIN"),
		})
		return models.Squad{}, false
	}

	return squad, true
}

// editable strips the fields the edit form cannot touch.
func editable(s models.Squad) models.SquadDraft {
	return models.SquadDraft{
		Title:      s.Title,
		LeaderName: s.LeaderName,
		Date:       s.Date,
		Time:       s.Time,
		Location:   s.Location,
		Discipline: s.Discipline,
		Capacity:   s.Capacity,
		Message:    s.Message,
		Contact:    s.Contact,
	}
}
