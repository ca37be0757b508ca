package services

import (
	"context"
	"strings"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/validator"
)

type SupportService struct {
	tickets TicketStore
	logger  logger.Logger
}

type SupportServiceOptions struct {
	Tickets TicketStore
	Logger  logger.Logger
}

func NewSupportService(opts SupportServiceOptions) *SupportService {
	s := &SupportService{
		tickets: opts.Tickets,
		logger:  opts.Logger,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

// Create gửi yêu cầu hỗ trợ mới với trạng thái open
func (s *SupportService) Create(ctx context.Context, identity Identity, req dto.TicketRequest) (*models.SupportTicket, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}

	ticket := &models.SupportTicket{
		UserID:  identity.UserID,
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  constants.TicketStatusOpen,
	}
	if err := validator.ValidateTicket(ticket); err != nil {
		return nil, err
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("User %d gửi yêu cầu hỗ trợ #%d", identity.UserID, ticket.ID)
	return ticket, nil
}

func (s *SupportService) ListMine(ctx context.Context, identity Identity) ([]models.SupportTicket, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	return s.tickets.ListByUser(ctx, identity.UserID)
}

func (s *SupportService) ListAll(ctx context.Context, identity Identity) ([]models.SupportTicket, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới xem được yêu cầu hỗ trợ")
	}
	return s.tickets.ListAll(ctx)
}

func (s *SupportService) UpdateStatus(ctx context.Context, identity Identity, id uint, status string) (*models.SupportTicket, error) {
	if !identity.IsAdmin() {
		return nil, apperr.Unauthorized("Chỉ admin mới được cập nhật yêu cầu hỗ trợ")
	}
	if err := validator.ValidateTicketStatus(status); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Status = status
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info("Yêu cầu hỗ trợ #%d chuyển sang %s", id, status)
	return ticket, nil
}
