package controllers

import (
	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"

	"github.com/gin-gonic/gin"
)

type TriageController struct{}

func NewTriageController() *TriageController { return &TriageController{} }

type TriageReq struct {
	Description string `json:"description" binding:"required"`
}

// Analyze runs the keyword rules over the symptom description.
func (tc *TriageController) Analyze(c *gin.Context) {
	var req TriageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.OK(c, services.TriageSymptom(req.Description))
}
