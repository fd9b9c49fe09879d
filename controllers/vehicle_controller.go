package controllers

import (
	"time"

	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type VehicleController struct{ Svc *services.VehicleService }

func NewVehicleController(svc *services.VehicleService) *VehicleController {
	return &VehicleController{Svc: svc}
}

type VehicleReq struct {
	Make             string `json:"make"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	Mileage          int    `json:"mileage"`
	LastServiceDate  string `json:"lastServiceDate"`  // YYYY-MM-DD
	MotDueDate       string `json:"motDueDate"`       // YYYY-MM-DD
	InsuranceDueDate string `json:"insuranceDueDate"` // YYYY-MM-DD
	TaxDueDate       string `json:"taxDueDate"`       // YYYY-MM-DD
}

func (req *VehicleReq) toInput(c *gin.Context) (services.VehicleInput, bool) {
	in := services.VehicleInput{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Mileage: req.Mileage,
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
	var ok bool
	if in.LastServiceDate, ok = parse(req.LastServiceDate); !ok {
		return in, false
	}
	if in.MotDueDate, ok = parse(req.MotDueDate); !ok {
		return in, false
	}
	if in.InsuranceDueDate, ok = parse(req.InsuranceDueDate); !ok {
		return in, false
	}
	if in.TaxDueDate, ok = parse(req.TaxDueDate); !ok {
		return in, false
	}
	return in, true
}

func (vc *VehicleController) Create(c *gin.Context) {
	var req VehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	v, err := vc.Svc.Create(utils.CurrentUserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, v)
}

func (vc *VehicleController) List(c *gin.Context) {
	vehicles, err := vc.Svc.List(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, vehicles)
}

func (vc *VehicleController) Get(c *gin.Context) {
	v, err := vc.Svc.Get(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

func (vc *VehicleController) Update(c *gin.Context) {
	var req VehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	v, err := vc.Svc.Update(utils.CurrentUserID(c), paramID(c, "id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// Health returns the score and what to do about it.
func (vc *VehicleController) Health(c *gin.Context) {
	report, err := vc.Svc.Health(utils.CurrentUserID(c), paramID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, report)
}
