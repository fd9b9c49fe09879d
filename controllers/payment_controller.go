package controllers

import (
	"github.com/FawazNazmo/MechLink/pkg/resp"
	"github.com/FawazNazmo/MechLink/services"
	"github.com/FawazNazmo/MechLink/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: svc}
}

// ===== Deposits (user) =====

type RecordDepositReq struct {
	BookingID   *uint  `json:"bookingId"`
	MechanicID  *uint  `json:"mechanicId"`
	Amount      int64  `json:"amount" binding:"required"` // pence
	ProviderRef string `json:"providerRef"`
}

func (pc *PaymentController) RecordDeposit(c *gin.Context) {
	var req RecordDepositReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p, err := pc.Svc.RecordDeposit(utils.CurrentUserID(c), services.RecordDepositInput{
		BookingID:   req.BookingID,
		MechanicID:  req.MechanicID,
		Amount:      req.Amount,
		ProviderRef: req.ProviderRef,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, p)
}

func (pc *PaymentController) ListMine(c *gin.Context) {
	payments, err := pc.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, payments)
}

// ===== Bank details (mechanic) =====

type BankAccountReq struct {
	AccountName   string `json:"accountName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	SortCode      string `json:"sortCode" binding:"required"`
}

func (pc *PaymentController) CreateBankAccount(c *gin.Context) {
	var req BankAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := pc.Svc.CreateBankAccount(utils.CurrentUserID(c), services.BankAccountInput{
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		SortCode:      req.SortCode,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, view)
}

func (pc *PaymentController) GetBankAccount(c *gin.Context) {
	view, err := pc.Svc.GetBankAccount(utils.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, view)
}
