package controllers

import (
	"strconv"

	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"

	"github.com/gin-gonic/gin"
)

type PricingController struct{ Svc *services.PricingService }

func NewPricingController(svc *services.PricingService) *PricingController {
	return &PricingController{Svc: svc}
}

// Quote returns the fair band for ?serviceType=&carSize= and, when ?cost=
// is supplied, classifies that quote against it.
func (pc *PricingController) Quote(c *gin.Context) {
	serviceType := c.Query("serviceType")
	if serviceType == "" {
		resp.BadRequest(c, "serviceType is required")
		return
	}
	carSize := c.DefaultQuery("carSize", "any")

	fair, err := pc.Svc.ComputeFairRange(serviceType, carSize)
	if err != nil {
		fail(c, err)
		return
	}

	out := gin.H{"serviceType": serviceType, "carSize": carSize, "fair": fair}
	if raw := c.Query("cost"); raw != "" {
		cost, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			resp.BadRequest(c, "cost must be a number")
			return
		}
		out["flag"] = services.ClassifyPrice(cost, fair)
	}
	resp.OK(c, out)
}
