package controllers

import (
	"time"

	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type AlertController struct{ Svc *services.AlertService }

func NewAlertController(svc *services.AlertService) *AlertController {
	return &AlertController{Svc: svc}
}

// ===== Preferences =====

func (ac *AlertController) GetSettings(c *gin.Context) {
	setting, err := ac.Svc.GetSettings(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, setting)
}

type SaveSettingsReq struct {
	Email          string `json:"email"`
	EmailReminders *bool  `json:"emailReminders" binding:"required"`
}

func (ac *AlertController) SaveSettings(c *gin.Context) {
	var req SaveSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	setting, err := ac.Svc.SaveSettings(utils.CurrentUserID(c), req.Email, *req.EmailReminders)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, setting)
}

// ===== Vehicle legal dates =====

func (ac *AlertController) GetVehicleReminder(c *gin.Context) {
	rem, err := ac.Svc.GetVehicleReminder(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rem)
}

type VehicleReminderReq struct {
	Registration    string `json:"registration" binding:"required"`
	MotExpiry       string `json:"motExpiry"`       // YYYY-MM-DD
	InsuranceExpiry string `json:"insuranceExpiry"` // YYYY-MM-DD
	TaxExpiry       string `json:"taxExpiry"`       // YYYY-MM-DD
}

func (ac *AlertController) SaveVehicleReminder(c *gin.Context) {
	var req VehicleReminderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	parse := func(s string) (*time.Time, bool) {
		if s == "" {
			return nil, true
		}
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			resp.BadRequest(c, "dates must be YYYY-MM-DD")
			return nil, false
		}
		return &d, true
	}
	mot, ok := parse(req.MotExpiry)
	if !ok {
		return
	}
	insurance, ok := parse(req.InsuranceExpiry)
	if !ok {
		return
	}
	tax, ok := parse(req.TaxExpiry)
	if !ok {
		return
	}

	rem, err := ac.Svc.SaveVehicleReminder(utils.CurrentUserID(c), services.VehicleReminderInput{
		Registration:    req.Registration,
		MotExpiry:       mot,
		InsuranceExpiry: insurance,
		TaxExpiry:       tax,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, rem)
}

// DueSoon lists legal dates expiring inside 30 days.
func (ac *AlertController) DueSoon(c *gin.Context) {
	due, err := ac.Svc.DueSoon(utils.CurrentUserID(c), time.Now(), 30)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, due)
}
