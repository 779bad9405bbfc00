package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental_server/core/domain"
	"rental_server/core/port/in"
	"rental_server/core/port/out"
	"rental_server/pkg/apperr"
	"rental_server/pkg/crypto"
	"rental_server/pkg/logger"
)

type Service struct {
	paymentRepo out.PaymentRepository
	profileRepo out.ProfileRepository
	encryptor   *crypto.Encryptor
}

func NewService(paymentRepo out.PaymentRepository, profileRepo out.ProfileRepository, encryptor *crypto.Encryptor) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		profileRepo: profileRepo,
		encryptor:   encryptor,
	}
}

func (s *Service) profileOf(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.DatabaseError("find profile", err)
	}
	if p == nil {
		return nil, apperr.NotFound("profile")
	}
	return p, nil
}

// Register stores a card on the user's profile. Number and CVC are
// encrypted before the row is written; the returned payment carries the
// masked number only.
func (s *Service) Register(ctx context.Context, userID uuid.UUID, req *in.RegisterPaymentRequest) (*domain.Payment, error) {
	if req.CardNumber == "" {
		return nil, apperr.MissingField("card_number")
	}
	if req.CardCvc == "" {
		return nil, apperr.MissingField("card_cvc")
	}
	if req.CardExpire == "" {
		return nil, apperr.MissingField("card_expire")
	}

	profile, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	encNumber, err := s.encryptor.Encrypt(req.CardNumber)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}
	encCvc, err := s.encryptor.Encrypt(req.CardCvc)
	if err != nil {
		return nil, apperr.InternalWithError(err)
	}

	p := &domain.Payment{
		ID:          uuid.New(),
		ProfileID:   profile.ID,
		CardCompany: req.CardCompany,
		CardNumber:  encNumber,
		CardCvc:     encCvc,
		CardExpire:  req.CardExpire,
		CardAlias:   req.CardAlias,
		IsMain:      req.IsMain,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, apperr.DatabaseError("create payment", err)
	}
	if req.IsMain {
		if err := s.paymentRepo.SetMain(ctx, profile.ID, p.ID); err != nil {
			return nil, apperr.DatabaseError("set main payment", err)
		}
	}

	logger.Info("[PaymentService.Register] registered card for profile %s", profile.ID)
	return s.present(p), nil
}

// present decrypts the stored number and swaps it for the masked form.
// The CVC never leaves the service.
func (s *Service) present(p *domain.Payment) *domain.Payment {
	number, err := s.encryptor.Decrypt(p.CardNumber)
	if err != nil {
		logger.Error("[PaymentService.present] failed to decrypt card number for %s: %v", p.ID, err)
		number = ""
	}

	shown := *p
	shown.CardNumber = number
	shown.CardNumber = shown.MaskedNumber()
	shown.CardCvc = ""
	return &shown
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*domain.Payment, error) {
	profile, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.paymentRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, apperr.DatabaseError("list payments", err)
	}

	payments := make([]*domain.Payment, 0, len(stored))
	for _, p := range stored {
		payments = append(payments, s.present(p))
	}
	return payments, nil
}

func (s *Service) owned(ctx context.Context, userID, paymentID uuid.UUID) (*domain.Payment, error) {
	profile, err := s.profileOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, apperr.DatabaseError("find payment", err)
	}
	if p == nil || p.ProfileID != profile.ID {
		return nil, apperr.NotFound("payment")
	}
	return p, nil
}

func (s *Service) SetMain(ctx context.Context, userID, paymentID uuid.UUID) error {
	p, err := s.owned(ctx, userID, paymentID)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.SetMain(ctx, p.ProfileID, p.ID); err != nil {
		return apperr.DatabaseError("set main payment", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, paymentID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, paymentID); err != nil {
		return err
	}
	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return apperr.DatabaseError("delete payment", err)
	}
	return nil
}
