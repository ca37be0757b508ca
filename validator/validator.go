package validator

import (
	"regexp"
	"strings"
	"time"

	"hotelbook/constants"
	"hotelbook/errors"
	"hotelbook/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateUser validate thông tin đăng ký
func ValidateUser(user *models.User) error {
	if strings.TrimSpace(user.FirstName) == "" || strings.TrimSpace(user.LastName) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Họ tên không được để trống", nil)
	}

	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email không được để trống", nil)
	}

	if err := ValidateEmail(user.Email); err != nil {
		return err
	}

	if user.PhoneNumber == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Số điện thoại không được để trống", nil)
	}

	if err := ValidatePhone(user.PhoneNumber); err != nil {
		return err
	}

	return ValidateUserType(user.UserType)
}

// ValidateUserType chỉ cho phép khách hàng và quản lý tự đăng ký
func ValidateUserType(userType string) error {
	switch userType {
	case constants.UserTypeCustomer, constants.UserTypeManager:
		return nil
	default:
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Loại tài khoản không hợp lệ", nil)
	}
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}
	return nil
}

// ValidatePhone kiểm tra số điện thoại hợp lệ
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}
	return nil
}

// ValidatePassword kiểm tra mật khẩu hợp lệ
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Mật khẩu phải có ít nhất 6 ký tự", nil)
	}
	return nil
}

func ValidateHotel(hotel *models.Hotel) error {
	if strings.TrimSpace(hotel.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tên khách sạn không được để trống", nil)
	}

	if strings.TrimSpace(hotel.Location) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Địa chỉ không được để trống", nil)
	}

	if hotel.Email != "" {
		if err := ValidateEmail(hotel.Email); err != nil {
			return err
		}
	}

	if hotel.PhoneNumber != "" {
		if err := ValidatePhone(hotel.PhoneNumber); err != nil {
			return err
		}
	}

	return nil
}

func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.RoomType) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Loại phòng không được để trống", nil)
	}

	if err := room.ValidateCapacity(); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, "Sức chứa phải lớn hơn 0", err)
	}

	if err := room.ValidatePrice(); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Giá phòng không được âm", err)
	}

	return nil
}

func ValidateTicket(ticket *models.SupportTicket) error {
	if strings.TrimSpace(ticket.Subject) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Tiêu đề không được để trống", nil)
	}

	if strings.TrimSpace(ticket.Message) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Nội dung không được để trống", nil)
	}

	return nil
}

// ValidateTicketStatus kiểm tra trạng thái phiếu hỗ trợ
func ValidateTicketStatus(status string) error {
	switch status {
	case constants.TicketStatusOpen, constants.TicketStatusInProgress, constants.TicketStatusClosed:
		return nil
	default:
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái không hợp lệ", nil)
	}
}

// ParseDate đọc ngày dạng YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(constants.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày không đúng định dạng YYYY-MM-DD", err)
	}
	return date, nil
}

// ParseStay đọc ngày nhận/trả phòng và kiểm tra ngày trả phòng phải sau ngày nhận phòng
func ParseStay(checkIn, checkOut string) (models.Stay, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return models.Stay{}, err
	}

	out, err := ParseDate(checkOut)
	if err != nil {
		return models.Stay{}, err
	}

	stay := models.NewStay(in, out)
	if !stay.Valid() {
		return models.Stay{}, errors.InvalidDateRange("Ngày trả phòng phải sau ngày nhận phòng")
	}
	return stay, nil
}
