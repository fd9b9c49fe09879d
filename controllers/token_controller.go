package controllers

import (
	"strconv"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type TokenController struct{ Svc *services.TokenService }

func NewTokenController(svc *services.TokenService) *TokenController {
	return &TokenController{Svc: svc}
}

// tokenView is the wire shape for a breakdown token.
type tokenView struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	MechanicID *uint     `json:"mechanicId,omitempty"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	Location   latLng    `json:"location"`
	CreatedAt  time.Time `json:"createdAt"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toTokenView(t *entity.BreakdownToken) tokenView {
	return tokenView{
		ID:         t.ID,
		UserID:     t.UserID,
		MechanicID: t.MechanicID,
		Status:     t.Status,
		Note:       t.Note,
		Location:   latLng{Lat: t.Lat, Lng: t.Lng},
		CreatedAt:  t.CreatedAt,
	}
}

// ===== Raise (user) =====

type RaiseTokenReq struct {
	Lat  *float64 `json:"lat" binding:"required"`
	Lng  *float64 `json:"lng" binding:"required"`
	Note string   `json:"note"`
}

func (tc *TokenController) Raise(c *gin.Context) {
	var req RaiseTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	t, err := tc.Svc.Raise(utils.CurrentUserID(c), *req.Lat, *req.Lng, req.Note)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, toTokenView(t))
}

// ===== Nearby (mechanic) =====

type nearbyTokenView struct {
	tokenView
	DistanceKm    float64 `json:"distanceKm"`
	EtaMinutes    int     `json:"etaMinutes"`
	PriorityLevel string  `json:"priorityLevel"`
}

// Nearby lists open tokens around the mechanic. Query: lat, lng, radius
// (meters, default 5000).
func (tc *TokenController) Nearby(c *gin.Context) {
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

	rows, err := tc.Svc.Nearby(lat, lng, radius, time.Now())
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]nearbyTokenView, 0, len(rows))
	for _, row := range rows {
		out = append(out, nearbyTokenView{
			tokenView:     toTokenView(&row.Token),
			DistanceKm:    row.DistanceKm,
			EtaMinutes:    row.EtaMinutes,
			PriorityLevel: row.PriorityLevel,
		})
	}
	resp.OK(c, out)
}

// ===== Accept / Resolve / Reject (mechanic) =====

func (tc *TokenController) Accept(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid token id")
		return
	}

	t, err := tc.Svc.Accept(id, utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, toTokenView(t))
}

func (tc *TokenController) Resolve(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid token id")
		return
	}

	t, err := tc.Svc.Resolve(id, utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, toTokenView(t))
}

func (tc *TokenController) Reject(c *gin.Context) {
	id := paramID(c, "id")
	if id == 0 {
		resp.BadRequest(c, "invalid token id")
		return
	}

	t, err := tc.Svc.Reject(id, utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, toTokenView(t))
}

// ===== Listings =====

// MyLatest returns the caller's most recent token, or null.
func (tc *TokenController) MyLatest(c *gin.Context) {
	t, err := tc.Svc.MyLatest(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	if t == nil {
		resp.OK(c, nil)
		return
	}
	resp.OK(c, toTokenView(t))
}

func (tc *TokenController) Assigned(c *gin.Context) {
	tokens, err := tc.Svc.Assigned(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]tokenView, 0, len(tokens))
	for i := range tokens {
		out = append(out, toTokenView(&tokens[i]))
	}
	resp.OK(c, out)
}

func paramID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
