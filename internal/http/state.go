package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lexiclient/internal/notify"
)

// StateController exposes container state and recent notifications.
type StateController struct {
	state StateReader
	feed  NotificationFeed
}

func NewStateController(state StateReader, feed NotificationFeed) *StateController {
	return &StateController{state: state, feed: feed}
}

// Snapshot handles GET /api/state
func (sc *StateController) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, sc.state.Snapshot())
}

// Notifications handles GET /api/notifications
func (sc *StateController) Notifications(c *gin.Context) {
	items := []notify.Notification{}
	if sc.feed != nil {
		items = append(items, sc.feed.Recent()...)
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}
