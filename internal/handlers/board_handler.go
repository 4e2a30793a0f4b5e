package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/models"
)

// Notices reads one board: ?category=G (default) or the caller's role letter.
func (h *Handler) Notices(c *gin.Context) {
	list, err := h.Access.Notices(c.Request.Context(), actor(c), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": list})
}

func (h *Handler) PostNotice(c *gin.Context) {
	var req models.Notice
	if !bind(c, &req) {
		return
	}

	n, err := h.Access.PostNotice(c.Request.Context(), actor(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *Handler) AvailableRooms(c *gin.Context) {
	rooms, err := h.Access.AvailableRooms(c.Request.Context(), actor(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
