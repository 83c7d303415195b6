package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexiclient/internal/entities"
)

type LanguagesController struct {
	actions LanguageActions
	state   StateReader
}

func NewLanguagesController(actions LanguageActions, state StateReader) *LanguagesController {
	return &LanguagesController{actions: actions, state: state}
}

// List handles GET /api/languages
// The catalog is fetched once per session; ?refresh=true refetches it.
func (lc *LanguagesController) List(c *gin.Context) {
	languages, err := lc.actions.LoadLanguages(c.Request.Context(), queryBool(c, "refresh"))
	if err != nil {
		respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"languages": languages,
		"selected":  lc.state.Snapshot().Languages.Selected,
	})
}

type selectLanguageRequest struct {
	Language string `json:"language"` // code or label; empty clears the slot
}

// Select handles PUT /api/languages/:slot
func (lc *LanguagesController) Select(c *gin.Context) {
	slot, ok := entities.ParseLanguageSlot(c.Param("slot"))
	if !ok {
		respondBadRequest(c, "slot must be one of source, target1, target2")
		return
	}

	var req selectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	language, err := lc.actions.SelectLanguage(c.Request.Context(), slot, req.Language)
	if err != nil && language == nil {
		respondActionError(c, err)
		return
	}

	languages := lc.state.Snapshot().Languages
	resp := gin.H{
		"slot":                slot,
		"language":            language,
		"selected":            languages.Selected,
		"translation_enabled": languages.TranslationEnabled,
	}
	if err != nil {
		// Selection stuck but the detail refresh it triggered failed.
		resp["refresh_error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
