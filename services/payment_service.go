// services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	Repo        *repository.PaymentRepository
	BankRepo    *repository.BankAccountRepository
	BookingRepo *repository.BookingRepository
}

func NewPaymentService(
	repo *repository.PaymentRepository,
	bankRepo *repository.BankAccountRepository,
	bookingRepo *repository.BookingRepository,
) *PaymentService {
	return &PaymentService{Repo: repo, BankRepo: bankRepo, BookingRepo: bookingRepo}
}

// ----- Deposits -----

type RecordDepositInput struct {
	BookingID   *uint
	MechanicID  *uint
	Amount      int64 // pence
	ProviderRef string
}

// RecordDeposit stores a deposit the client already paid. Charging happens
// outside MechLink; we only keep the record.
func (s *PaymentService) RecordDeposit(userID uint, in RecordDepositInput) (*entity.Payment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.BookingID != nil {
		b, err := s.BookingRepo.Get(*in.BookingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if b.UserID != userID {
			return nil, ErrNotOwner
		}
		if in.MechanicID == nil {
			in.MechanicID = &b.MechanicID
		}
	}

	ref := strings.TrimSpace(in.ProviderRef)
	if ref == "" {
		ref = "dep_" + uuid.NewString()
	}
	p := &entity.Payment{
		UserID:      userID,
		MechanicID:  in.MechanicID,
		BookingID:   in.BookingID,
		Amount:      in.Amount,
		Currency:    "gbp",
		Kind:        "deposit",
		Status:      "succeeded",
		Provider:    "stripe",
		ProviderRef: ref,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) ListForUser(userID uint) ([]entity.Payment, error) {
	return s.Repo.ListForUser(userID)
}

// ----- Mechanic bank details -----

var sortCodeRe = regexp.MustCompile(`^\d{6}$`)

type BankAccountInput struct {
	AccountName   string
	AccountNumber string
	SortCode      string
}

type BankAccountView struct {
	AccountName         string `json:"accountName"`
	AccountNumberMasked string `json:"accountNumber"`
	SortCode            string `json:"sortCode"`
}

func (s *PaymentService) CreateBankAccount(mechanicID uint, in BankAccountInput) (*BankAccountView, error) {
	name := strings.TrimSpace(in.AccountName)
	number := strings.TrimSpace(in.AccountNumber)
	sortCode, err := normalizeSortCode(in.SortCode)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if len(number) < 6 || len(number) > 10 || !allDigits(number) {
		return nil, fmt.Errorf("%w: account number must be 6-10 digits", ErrValidation)
	}

	exists, err := s.BankRepo.ExistsForUser(mechanicID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: bank details already saved", ErrConflict)
	}

	acct := &entity.BankAccount{
		UserID:        mechanicID,
		AccountName:   name,
		AccountNumber: number,
		SortCode:      sortCode,
	}
	if err := s.BankRepo.Create(acct); err != nil {
		return nil, err
	}
	return bankView(acct), nil
}

func (s *PaymentService) GetBankAccount(mechanicID uint) (*BankAccountView, error) {
	acct, err := s.BankRepo.FindByUser(mechanicID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: no bank details on file", ErrNotFound)
	}
	return bankView(acct), nil
}

func bankView(acct *entity.BankAccount) *BankAccountView {
	return &BankAccountView{
		AccountName:         acct.AccountName,
		AccountNumberMasked: maskAccountNumber(acct.AccountNumber),
		SortCode:            acct.SortCode,
	}
}

// maskAccountNumber hides all but the last four digits.
func maskAccountNumber(n string) string {
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}

// normalizeSortCode accepts "123456", "12-34-56" or "12 34 56" and returns
// the canonical NN-NN-NN form.
func normalizeSortCode(raw string) (string, error) {
	digits := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(raw))
	if !sortCodeRe.MatchString(digits) {
		return "", fmt.Errorf("%w: sort code must be 6 digits", ErrValidation)
	}
	return digits[0:2] + "-" + digits[2:4] + "-" + digits[4:6], nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
