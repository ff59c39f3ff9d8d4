package handlers

import (
	"errors"
	"net/http"

	"pool_automation/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusNoop     = "noop"
	statusDisabled = "disabled"

	errGetState        = "failed to load state"
	errInvalidBodyPref = "invalid body: "
	errBusy            = "another command is in progress, try again"
	errDevice          = "panel did not accept the key press"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// CommandResponse is returned by POST /api/v1/pool.
type CommandResponse struct {
	Status string                `json:"status" example:"ok"` // ok | noop | disabled
	Result service.CommandResult `json:"result"`
	State  *PoolStatus           `json:"state,omitempty"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get pool status
// @Description  Last state decoded from the panel, with any transition in progress in message.
// @Tags         pool
// @Produce      json
// @Success      200  {object}  PoolStatus
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/pool [get]
func (h *Handler) getPool(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "pool_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, newPoolStatus(st))
}

// @Summary      Change pool state
// @Description  Presses the panel button for the attribute until it reaches the requested state.
// @Description  Two presses of the same button are separated by a settle delay.
// @Tags         pool
// @Accept       json
// @Produce      json
// @Param        body  body      CommandRequest  true  "Command"
// @Success      200   {object}  CommandResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/pool [post]
func (h *Handler) changeState(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	res, err := h.services.Control.ChangeState(ctx, service.Command{Attribute: req.Attribute, State: req.State})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUnknownAttribute), errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrCommandInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": errBusy})
		return
	default:
		h.logAndJSONError(c, http.StatusBadGateway, errDevice, "pool_change_state_failed", err,
			"attribute", req.Attribute, "state", req.State, "presses_sent", res.PressesSent)
		return
	}

	resp := CommandResponse{Status: statusOK, Result: res}
	switch {
	case res.Disabled:
		resp.Status = statusDisabled
	case res.Plan.NoOp():
		resp.Status = statusNoop
	}
	// best-effort: include the state the command left behind
	if st, err := h.services.Monitoring.GetState(ctx); err == nil {
		view := newPoolStatus(st)
		resp.State = &view
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Decode an LED string
// @Description  Decodes a raw LED segment as captured from the status page and lists the known key names.
// @Tags         pool
// @Produce      json
// @Param        raw  path      string  true  "Raw LED characters"  example(TECD4C333333)
// @Success      200  {object}  service.KeyReport
// @Router       /api/v1/pool/keys/{raw} [get]
func (h *Handler) decodeKeys(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Diagnostics.DecodeKeys(c.Param("raw")))
}
