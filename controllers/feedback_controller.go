package controllers

import (
	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct{ Svc *services.FeedbackService }

func NewFeedbackController(svc *services.FeedbackService) *FeedbackController {
	return &FeedbackController{Svc: svc}
}

type CreateFeedbackReq struct {
	MechanicID uint   `json:"mechanicId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
	SourceType string `json:"sourceType"` // token | booking
	SourceID   uint   `json:"sourceId"`
}

func (fc *FeedbackController) Create(c *gin.Context) {
	var req CreateFeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	fb, err := fc.Svc.Create(utils.CurrentUserID(c), services.CreateFeedbackInput{
		MechanicID: req.MechanicID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		SourceType: req.SourceType,
		SourceID:   req.SourceID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, fb)
}

// ListForMechanic is public: anyone can read a mechanic's reviews.
func (fc *FeedbackController) ListForMechanic(c *gin.Context) {
	list, err := fc.Svc.ListForMechanic(paramID(c, "id"), 50)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, list)
}

func (fc *FeedbackController) Summary(c *gin.Context) {
	summary, err := fc.Svc.SummaryForMechanic(paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, summary)
}

// MySummary is the mechanic's own dashboard card.
func (fc *FeedbackController) MySummary(c *gin.Context) {
	summary, err := fc.Svc.SummaryForMechanic(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, summary)
}

// Pending lists finished jobs the caller has not rated yet.
func (fc *FeedbackController) Pending(c *gin.Context) {
	items, err := fc.Svc.Pending(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}
