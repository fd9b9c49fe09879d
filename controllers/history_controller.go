package controllers

import (
	"time"

	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type HistoryController struct{ Svc *services.HistoryService }

func NewHistoryController(svc *services.HistoryService) *HistoryController {
	return &HistoryController{Svc: svc}
}

// Mine returns the owner's service records, upcoming-service alerts and
// breakdown-risk estimate in one payload.
func (hc *HistoryController) Mine(c *gin.Context) {
	history, err := hc.Svc.ForUser(utils.CurrentUserID(c), time.Now())
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, history)
}

// MechanicJobs lists the jobs the mechanic has logged.
func (hc *HistoryController) MechanicJobs(c *gin.Context) {
	records, err := hc.Svc.ForMechanic(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, records)
}
