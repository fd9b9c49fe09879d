package controllers

import (
	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type ChatController struct{ Svc *services.ChatService }

func NewChatController(svc *services.ChatService) *ChatController {
	return &ChatController{Svc: svc}
}

func (cc *ChatController) Conversations(c *gin.Context) {
	convs, err := cc.Svc.Conversations(utils.CurrentUserID(c), utils.CurrentRole(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, convs)
}

// Thread returns the full exchange with the peer in :id.
func (cc *ChatController) Thread(c *gin.Context) {
	msgs, err := cc.Svc.Thread(utils.CurrentUserID(c), utils.CurrentRole(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, msgs)
}

type SendMessageReq struct {
	Text string `json:"text" binding:"required"`
}

func (cc *ChatController) Send(c *gin.Context) {
	var req SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	msg, err := cc.Svc.Send(utils.CurrentUserID(c), utils.CurrentRole(c), paramID(c, "id"), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, msg)
}
