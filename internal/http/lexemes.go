package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexiclient/internal/entities"
)

type LexemesController struct {
	actions LexemeActions
	trigger Trigger
	state   StateReader
	match   bool
}

func NewLexemesController(actions LexemeActions, trigger Trigger, state StateReader, match bool) *LexemesController {
	return &LexemesController{actions: actions, trigger: trigger, state: state, match: match}
}

type searchRequest struct {
	Query string `json:"query"`
	Match *bool  `json:"match,omitempty"`
}

// Search handles POST /api/search
// Runs immediately and cancels any pending suggestion.
func (lc *LexemesController) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	match := lc.match
	if req.Match != nil {
		match = *req.Match
	}
	results, err := lc.trigger.SubmitMatch(c.Request.Context(), req.Query, match)
	if err != nil {
		respondActionError(c, err)
		return
	}
	if results == nil {
		results = []entities.LexemeSearchResult{}
	}
	c.JSON(http.StatusOK, gin.H{"query": strings.TrimSpace(req.Query), "results": results})
}

type suggestRequest struct {
	Query string `json:"query"`
}

// Suggest handles POST /api/suggest
// Records live input; the search runs once input has been quiet for the
// debounce period and lands in /api/state.
func (lc *LexemesController) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	lc.trigger.Input(req.Query)
	respondAccepted(c, "search scheduled", gin.H{"query": req.Query})
}

// Select handles POST /api/lexemes/select
func (lc *LexemesController) Select(c *gin.Context) {
	var result entities.LexemeSearchResult
	if err := c.ShouldBindJSON(&result); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(result.ID) == "" {
		respondBadRequest(c, "id is required")
		return
	}

	if err := lc.trigger.Select(c.Request.Context(), result); err != nil {
		respondActionError(c, err)
		return
	}
	lc.respondDetails(c)
}

// Details handles GET /api/lexemes/details
// ?tab= switches the active view; ?refresh=true refetches for the current
// language selection.
func (lc *LexemesController) Details(c *gin.Context) {
	if tab := c.Query("tab"); tab != "" {
		lc.actions.SetActiveTab(entities.ParseActiveTab(tab))
	}
	if queryBool(c, "refresh") {
		if _, err := lc.actions.FetchDetails(c.Request.Context()); err != nil {
			respondActionError(c, err)
			return
		}
	}
	lc.respondDetails(c)
}

func (lc *LexemesController) respondDetails(c *gin.Context) {
	lexemes := lc.state.Snapshot().Lexemes
	if lexemes.Detail == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no lexeme details loaded", Code: "no_details"})
		return
	}

	views, tab := lc.actions.DetailViews()
	c.JSON(http.StatusOK, gin.H{
		"clicked":    lexemes.Clicked,
		"lexeme":     lexemes.Detail.Lexeme,
		"views":      views,
		"active_tab": tab,
		"glosses":    views.View(tab),
	})
}
