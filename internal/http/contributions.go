package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

type ContributionsController struct {
	actions ContributionActions
	state   StateReader
	outbox  Outbox
}

func NewContributionsController(actions ContributionActions, state StateReader, outbox Outbox) *ContributionsController {
	return &ContributionsController{actions: actions, state: state, outbox: outbox}
}

type translationsRequest struct {
	Entries []entities.LabeledTranslation `json:"entries"`
}

type audioRequest struct {
	Entries []entities.AudioTranslation `json:"entries"`
}

// AddTranslations handles POST /api/translations
// ?queue=true hands the entries to the outbox and returns 202.
func (cc *ContributionsController) AddTranslations(c *gin.Context) {
	var req translationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if cc.queued(c) {
		if !cc.state.Snapshot().Auth.Authenticated {
			respondActionError(c, orchestrator.ErrNotAuthenticated)
			return
		}
		id, err := cc.outbox.QueueTranslations(req.Entries)
		if err != nil {
			respondActionError(c, err)
			return
		}
		respondAccepted(c, "translations queued", gin.H{"task_id": id})
		return
	}

	if err := cc.actions.AddLabeledTranslation(c.Request.Context(), req.Entries); err != nil {
		respondActionError(c, err)
		return
	}
	respondSuccess(c, "translations added")
}

// AddAudio handles POST /api/audio
func (cc *ContributionsController) AddAudio(c *gin.Context) {
	var req audioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if cc.queued(c) {
		if !cc.state.Snapshot().Auth.Authenticated {
			respondActionError(c, orchestrator.ErrNotAuthenticated)
			return
		}
		id, err := cc.outbox.QueueAudio(req.Entries)
		if err != nil {
			respondActionError(c, err)
			return
		}
		respondAccepted(c, "audio queued", gin.H{"task_id": id})
		return
	}

	if err := cc.actions.AddAudioTranslation(c.Request.Context(), req.Entries); err != nil {
		respondActionError(c, err)
		return
	}
	respondSuccess(c, "audio added")
}

// MissingAudio handles GET /api/missing-audio
// ?lang= defaults to the selected source language.
func (cc *ContributionsController) MissingAudio(c *gin.Context) {
	missing, err := cc.actions.MissingAudio(c.Request.Context(), c.Query("lang"))
	if err != nil {
		respondActionError(c, err)
		return
	}
	if missing == nil {
		missing = []entities.MissingAudioLexeme{}
	}
	c.JSON(http.StatusOK, gin.H{"lexemes": missing})
}

// OutboxStatus handles GET /api/outbox/:id
func (cc *ContributionsController) OutboxStatus(c *gin.Context) {
	if cc.outbox == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "outbox disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	taskID := c.Param("id")
	status, err := cc.outbox.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "outbox status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func (cc *ContributionsController) queued(c *gin.Context) bool {
	return cc.outbox != nil && queryBool(c, "queue")
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
