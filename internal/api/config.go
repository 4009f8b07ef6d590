package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business settings stored in the config table. Values written through the
// API override the config.toml defaults.
const (
	keyDefaultSLATarget = "default_sla_target"
	keySLAWarnThreshold = "sla_warn_threshold"
)

// ConfigResponse carries the effective business settings.
type ConfigResponse struct {
	DefaultSLATarget float64 `json:"defaultSlaTarget"`
	SLAWarnThreshold float64 `json:"slaWarnThreshold"`
}

func (h *Handler) defaultSLATarget() float64 {
	if v, err := h.store.GetConfigFloat(keyDefaultSLATarget); err == nil {
		return v
	}
	return h.sla.DefaultTarget
}

func (h *Handler) slaWarnThreshold() float64 {
	if v, err := h.store.GetConfigFloat(keySLAWarnThreshold); err == nil {
		return v
	}
	return h.sla.WarnThreshold
}

// GetConfig returns the effective business settings.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		DefaultSLATarget: h.defaultSLATarget(),
		SLAWarnThreshold: h.slaWarnThreshold(),
	})
}

type updateConfigRequest struct {
	DefaultSLATarget *float64 `json:"defaultSlaTarget"`
	SLAWarnThreshold *float64 `json:"slaWarnThreshold"`
}

// UpdateConfig persists business settings.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.DefaultSLATarget != nil {
		if *req.DefaultSLATarget < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "defaultSlaTarget must be >= 0"})
			return
		}
		if err := h.store.SetConfigFloat(keyDefaultSLATarget, *req.DefaultSLATarget); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.SLAWarnThreshold != nil {
		if *req.SLAWarnThreshold < 0 || *req.SLAWarnThreshold > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slaWarnThreshold must be in [0,1]"})
			return
		}
		if err := h.store.SetConfigFloat(keySLAWarnThreshold, *req.SLAWarnThreshold); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, ConfigResponse{
		DefaultSLATarget: h.defaultSLATarget(),
		SLAWarnThreshold: h.slaWarnThreshold(),
	})
}
