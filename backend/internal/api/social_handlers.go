package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	apperrors "social-demo/backend/pkg/errors"
)

// result is the envelope of every JSON mutation endpoint
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type addFriendRequest struct {
	UserEmail   string `json:"userEmail" form:"userEmail"`
	FriendEmail string `json:"friendEmail" form:"friendEmail"`
}

type sendMessageRequest struct {
	FromEmail string `json:"fromEmail" form:"fromEmail"`
	ToEmail   string `json:"toEmail" form:"toEmail"`
	Message   string `json:"message" form:"message"`
}

// rejectBody answers an unparseable request body
func (h *Handler) rejectBody(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, result{Success: false, Message: constants.MsgInvalidBody})
}

// businessFailure answers an expected rule violation with HTTP 200, or 500 when
// the error is not one of the known outcomes.
func (h *Handler) businessFailure(c *gin.Context, err error) {
	msg := apperrors.PublicMessage(err, "")
	if msg == "" {
		h.logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, result{Success: false, Message: "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, result{Success: false, Message: msg})
}

func (h *Handler) addFriend(c *gin.Context) {
	var req addFriendRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectBody(c, err)
		return
	}

	if err := h.svc.AddFriend(req.UserEmail, req.FriendEmail); err != nil {
		h.businessFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, result{Success: true, Message: constants.MsgFriendAdded})
}

func (h *Handler) listFriends(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListFriends(c.Param("userEmail")))
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectBody(c, err)
		return
	}

	if _, err := h.svc.SendMessage(req.FromEmail, req.ToEmail, req.Message); err != nil {
		h.businessFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, result{Success: true, Message: constants.MsgMessageSent})
}

func (h *Handler) getConversation(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetConversation(c.Param("user1"), c.Param("user2")))
}

func (h *Handler) listProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Directory.List())
}

func (h *Handler) listVideos(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Videos.List())
}
