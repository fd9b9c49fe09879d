package controllers

import (
	"time"

	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct{ Svc *services.BookingService }

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Svc: svc}
}

// ===== Create (user) =====

type CreateBookingReq struct {
	MechanicID    uint   `json:"mechanicId" binding:"required"`
	Issue         string `json:"issue" binding:"required"`
	PreferredDate string `json:"preferredDate" binding:"required"` // YYYY-MM-DD
	PreferredTime string `json:"preferredTime" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

func (bc *BookingController) Create(c *gin.Context) {
	var req CreateBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	b, err := bc.Svc.Create(utils.CurrentUserID(c), services.CreateBookingInput{
		MechanicID:    req.MechanicID,
		Issue:         req.Issue,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, b)
}

// CheckSlot answers whether a mechanic is bookable at ?date=&time=.
func (bc *BookingController) CheckSlot(c *gin.Context) {
	mechanicID := paramID(c, "id")
	date, timeOfDay := c.Query("date"), c.Query("time")
	if mechanicID == 0 || date == "" || timeOfDay == "" {
		resp.BadRequest(c, "mechanic id, date and time are required")
		return
	}

	check, err := bc.Svc.CheckSlot(mechanicID, date, timeOfDay)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, check)
}

// ===== Listings =====

func (bc *BookingController) ListMine(c *gin.Context) {
	bookings, err := bc.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, bookings)
}

func (bc *BookingController) ListForMechanic(c *gin.Context) {
	bookings, err := bc.Svc.ListForMechanic(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, bookings)
}

// ===== Transitions =====

func (bc *BookingController) Accept(c *gin.Context) {
	b, err := bc.Svc.Accept(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, b)
}

func (bc *BookingController) CancelByUser(c *gin.Context) {
	b, err := bc.Svc.CancelByUser(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, b)
}

func (bc *BookingController) CancelByMechanic(c *gin.Context) {
	b, err := bc.Svc.CancelByMechanic(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, b)
}

func (bc *BookingController) MarkNoShow(c *gin.Context) {
	b, err := bc.Svc.MarkNoShow(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, b)
}

// ===== Complete (mechanic) =====

type CompleteBookingReq struct {
	Service         string  `json:"service" binding:"required"`
	Cost            float64 `json:"cost" binding:"required"`
	Notes           string  `json:"notes"`
	NextServiceDate string  `json:"nextServiceDate"` // YYYY-MM-DD, optional
	ServiceType     string  `json:"serviceType"`
	CarSize         string  `json:"carSize"`
}

func (bc *BookingController) Complete(c *gin.Context) {
	var req CompleteBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var nextDate *time.Time
	if req.NextServiceDate != "" {
		d, err := time.Parse("2006-01-02", req.NextServiceDate)
		if err != nil {
			resp.BadRequest(c, "nextServiceDate must be YYYY-MM-DD")
			return
		}
		nextDate = &d
	}

	b, rec, err := bc.Svc.Complete(utils.CurrentUserID(c), paramID(c, "id"), services.CompleteBookingInput{
		Service:         req.Service,
		Cost:            req.Cost,
		Notes:           req.Notes,
		NextServiceDate: nextDate,
		ServiceType:     req.ServiceType,
		CarSize:         req.CarSize,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"booking": b, "record": rec})
}
