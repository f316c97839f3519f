package handlers

import (
	"errors"
	"net/http"

	"spacescope/internal/analysis"
	"spacescope/internal/domain"
	"spacescope/internal/services"
	"spacescope/internal/share"

	"github.com/gin-gonic/gin"
)

type createSessionRequest struct {
	Premium bool `json:"premium"`
}

type entitlementRequest struct {
	Premium *bool `json:"premium" binding:"required"`
}

type chatRequest struct {
	Text string `json:"text"`
}

// session loads the session named by the :id parameter, writing the error
// response when it is missing
func (h *Handler) session(c *gin.Context) (*services.Session, bool) {
	sess, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return sess, true
}

// entity resolves the :entityId parameter to a curated event or asteroid
func (h *Handler) entity(c *gin.Context) (domain.Entity, bool) {
	e, ok := h.Feeds.FindEntity(c.Request.Context(), c.Param("entityId"))
	if !ok {
		c.JSON(http.StatusNotFound, domain.ErrorResponse("ENTITY_NOT_FOUND", "unknown event or asteroid: "+c.Param("entityId")))
		return nil, false
	}
	return e, true
}

// CreateSession handles session creation requests
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, domain.ErrorResponse("INVALID_BODY", err.Error()))
			return
		}
	}

	sess := h.Sessions.Create(req.Premium)
	c.JSON(http.StatusCreated, domain.SuccessResponse(map[string]interface{}{
		"id":         sess.ID,
		"created_at": sess.CreatedAt,
		"premium":    sess.Premium(),
		"history":    sess.Assistant.History(),
	}))
}

// DeleteSession handles session termination requests
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.Sessions.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetEntitlement handles premium flag updates
func (h *Handler) SetEntitlement(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req entitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse("INVALID_BODY", err.Error()))
		return
	}

	sess.SetPremium(*req.Premium)
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"premium": sess.Premium(),
	}))
}

// GetChat handles dialogue history requests
func (h *Handler) GetChat(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"history": sess.Assistant.History(),
		"busy":    sess.Assistant.Busy(),
	}))
}

// PostChat handles chat submissions
func (h *Handler) PostChat(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse("INVALID_BODY", err.Error()))
		return
	}

	reply, err := sess.Assistant.Submit(c.Request.Context(), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"reply":   reply,
		"history": sess.Assistant.History(),
	}))
}

// AnalyzeMission handles mission analysis requests
func (h *Handler) AnalyzeMission(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	mission, found := domain.FindMission(c.Param("missionId"))
	if !found {
		c.JSON(http.StatusNotFound, domain.ErrorResponse("MISSION_NOT_FOUND", "unknown mission: "+c.Param("missionId")))
		return
	}

	snap := sess.Missions.Analyze(c.Request.Context(), mission)
	c.JSON(http.StatusOK, domain.SuccessResponse(snap))
}

// missionSnapshot returns the slot state as seen from :missionId. A slot
// holding another mission reads as idle.
func missionSnapshot(c *gin.Context, sess *services.Session) (analysis.Snapshot[domain.MissionAnalysisReport], bool) {
	snap := sess.Missions.Snapshot()
	if snap.Subject != c.Param("missionId") {
		return analysis.Snapshot[domain.MissionAnalysisReport]{State: analysis.StateIdle}, false
	}
	return snap, true
}

// GetMissionAnalysis handles mission analysis state requests
func (h *Handler) GetMissionAnalysis(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	snap, _ := missionSnapshot(c, sess)
	c.JSON(http.StatusOK, domain.SuccessResponse(snap))
}

// CloseMissionAnalysis discards the mission report and cancels any
// outstanding request. Closing a mission the slot does not hold is a no-op.
func (h *Handler) CloseMissionAnalysis(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if _, held := missionSnapshot(c, sess); held {
		sess.Missions.Close()
	}
	snap, _ := missionSnapshot(c, sess)
	c.JSON(http.StatusOK, domain.SuccessResponse(snap))
}

// AnalyzeWeather handles space weather threat analysis requests
func (h *Handler) AnalyzeWeather(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.Premium() {
		h.fail(c, domain.ErrUpgradeRequired)
		return
	}

	notes := h.Feeds.SpaceWeather(c.Request.Context())
	snap, err := sess.Weather.Analyze(c.Request.Context(), sess.Premium(), notes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(snap))
}

// GetWeatherAnalysis handles weather analysis state requests
func (h *Handler) GetWeatherAnalysis(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(sess.Weather.Snapshot()))
}

// CloseWeatherAnalysis discards the weather report
func (h *Handler) CloseWeatherAnalysis(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Weather.Close()
	c.JSON(http.StatusOK, domain.SuccessResponse(sess.Weather.Snapshot()))
}

// ListInterests handles interest set requests
func (h *Handler) ListInterests(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"ids": sess.Interests.IDs(),
	}))
}

// ToggleInterest handles notification toggle requests. Removing an id
// already in the set needs no lookup, so entities that have since left the
// feed can still be dropped.
func (h *Handler) ToggleInterest(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.Premium() {
		h.fail(c, domain.ErrUpgradeRequired)
		return
	}

	id := c.Param("entityId")
	if !sess.Interests.HasID(id) {
		e, ok := h.entity(c)
		if !ok {
			return
		}
		id = domain.ResolveID(e)
	}

	on, err := sess.Interests.ToggleID(true, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(map[string]interface{}{
		"id":         id,
		"interested": on,
	}))
}

// Share handles share requests. The HTTP surface has no native share
// capability, so the link is copied to the session clipboard and returned.
func (h *Handler) Share(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	e, ok := h.entity(c)
	if !ok {
		return
	}

	out, err := sess.Share.Share(c.Request.Context(), e)
	if errors.Is(err, share.ErrCopyFailed) {
		c.JSON(http.StatusOK, domain.ApiResponse{
			Ok:    false,
			Data:  out,
			Error: &domain.ApiError{Code: "COPY_FAILED", Message: err.Error()},
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SuccessResponse(out))
}
