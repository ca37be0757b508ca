package repository

import (
	"context"
	"strings"

	apperr "hotelbook/errors"
	"hotelbook/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if isUniqueViolation(err) {
		return apperr.NewAppError(apperr.ErrCodeUserExists, "Email đã được sử dụng", err)
	}
	return translate(err, userNotFound)
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(user).
		Select("first_name", "last_name", "phone_number", "user_type", "password", "updated_at").
		Updates(user).Error
	return translate(err, userNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translate(result.Error, userNotFound)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(userNotFound)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, userNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err, userNotFound)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, translate(err, userNotFound)
}

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.SupportTicket) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(ticket).Error, ticketNotFound)
}

func (r *TicketRepository) Update(ctx context.Context, ticket *models.SupportTicket) error {
	err := r.db.WithContext(ctx).
		Model(ticket).
		Select("status").
		Updates(ticket).Error
	return translate(err, ticketNotFound)
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, translate(err, ticketNotFound)
	}
	return &ticket, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&tickets).Error
	return tickets, translate(err, ticketNotFound)
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&tickets).Error
	return tickets, translate(err, ticketNotFound)
}
