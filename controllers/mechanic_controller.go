package controllers

import (
	"strconv"

	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type MechanicController struct{ Svc *services.MechanicService }

func NewMechanicController(svc *services.MechanicService) *MechanicController {
	return &MechanicController{Svc: svc}
}

// ===== Discovery (user) =====

// Nearby lists mechanics around ?lat=&lng=&radius= (kilometres, default 50).
func (mc *MechanicController) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "lat and lng are required")
		return
	}
	radius := 0.0
	if r := c.Query("radius"); r != "" {
		radius, _ = strconv.ParseFloat(r, 64)
	}

	listings, err := mc.Svc.Nearby(lat, lng, radius)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, listings)
}

func (mc *MechanicController) Search(c *gin.Context) {
	mechanics, err := mc.Svc.Search(c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, mechanics)
}

// ===== Scores =====

func (mc *MechanicController) Integrity(c *gin.Context) {
	breakdown, err := mc.Svc.IntegrityScore(paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, breakdown)
}

// MatchScore ranks a mechanic for the caller at ?lat=&lng=&serviceType=.
func (mc *MechanicController) MatchScore(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "lat and lng are required")
		return
	}

	score, err := mc.Svc.MatchScore(paramID(c, "id"), lat, lng, c.Query("serviceType"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"score": score})
}

// ===== Mechanic self-service =====

type SaveLocationReq struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (mc *MechanicController) SaveLocation(c *gin.Context) {
	var req SaveLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := mc.Svc.SaveLocation(utils.CurrentUserID(c), *req.Lat, *req.Lng); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"saved": true})
}

func (mc *MechanicController) SaveSchedule(c *gin.Context) {
	var schedule map[string]services.DaySchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := mc.Svc.SaveSchedule(utils.CurrentUserID(c), schedule); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"saved": true})
}

func (mc *MechanicController) GetSchedule(c *gin.Context) {
	schedule, err := mc.Svc.GetSchedule(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, schedule)
}
