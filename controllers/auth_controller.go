package controllers

import (
	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(svc *services.AuthService) *AuthController { return &AuthController{Svc: svc} }

// ===== Register =====

type RegisterReq struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`

	CarDetails string `json:"carDetails"`

	GarageName    string   `json:"garageName"`
	GarageAddress string   `json:"garageAddress"`
	GarageLat     *float64 `json:"garageLat"`
	GarageLng     *float64 `json:"garageLng"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Svc.Register(services.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		Role:          req.Role,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		CarDetails:    req.CarDetails,
		GarageName:    req.GarageName,
		GarageAddress: req.GarageAddress,
		GarageLat:     req.GarageLat,
		GarageLng:     req.GarageLng,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, gin.H{"token": token, "user": user})
}

// ===== Login =====

type LoginReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Svc.Login(req.Email, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// ===== Me =====

func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, user)
}
