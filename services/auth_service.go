package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"hotelbook/constants"
	"hotelbook/dto"
	apperr "hotelbook/errors"
	"hotelbook/models"
	"hotelbook/services/logger"
	"hotelbook/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// GoogleVerifier xác minh Google ID token và trả về thông tin người dùng
type GoogleVerifier interface {
	Verify(ctx context.Context, tokenID string) (*dto.GoogleUser, error)
}

type idTokenVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &idTokenVerifier{clientID: clientID}
}

func (v *idTokenVerifier) Verify(ctx context.Context, tokenID string) (*dto.GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, tokenID, v.clientID)
	if err != nil {
		return nil, err
	}

	user := &dto.GoogleUser{}
	user.Name, _ = payload.Claims["name"].(string)
	user.Email, _ = payload.Claims["email"].(string)
	user.VerifiedEmail, _ = payload.Claims["email_verified"].(bool)
	return user, nil
}

type AuthService struct {
	users  UserStore
	tokens *TokenManager
	google GoogleVerifier
	logger logger.Logger
}

type AuthServiceOptions struct {
	Users  UserStore
	Tokens *TokenManager
	Google GoogleVerifier
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	s := &AuthService{
		users:  opts.Users,
		tokens: opts.Tokens,
		google: opts.Google,
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// Register tạo tài khoản khách hàng hoặc quản lý
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*models.User, error) {
	user := &models.User{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		PhoneNumber: input.PhoneNumber,
		UserType:    input.UserType,
	}
	if err := validator.ValidateUser(user); err != nil {
		return nil, err
	}
	if err := validator.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Đăng ký tài khoản %d (%s)", user.ID, user.UserType)
	return user, nil
}

// Login trả về user và access token; sai email hay sai mật khẩu đều báo cùng một lỗi
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, "", apperr.Unauthorized("Email hoặc mật khẩu không hợp lệ")
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("Email hoặc mật khẩu không hợp lệ")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginWithGoogle đăng nhập bằng Google ID token, tạo tài khoản khách hàng nếu chưa có
func (s *AuthService) LoginWithGoogle(ctx context.Context, tokenID string) (*models.User, string, error) {
	if s.google == nil {
		return nil, "", apperr.Unauthorized("Chưa cấu hình đăng nhập Google")
	}

	googleUser, err := s.google.Verify(ctx, tokenID)
	if err != nil {
		return nil, "", apperr.NewAppError(apperr.ErrCodeInvalidToken, "Token Google không hợp lệ", err)
	}
	if !googleUser.VerifiedEmail || googleUser.Email == "" {
		return nil, "", apperr.Validation("Email chưa được xác thực", nil)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(googleUser.Email))
	if errors.Is(err, apperr.ErrNotFound) {
		user, err = s.createGoogleUser(ctx, googleUser)
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me trả về thông tin người dùng đang đăng nhập
func (s *AuthService) Me(ctx context.Context, identity Identity) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, apperr.Unauthorized("Chưa đăng nhập")
	}
	return s.users.GetByID(ctx, identity.UserID)
}

// EnsureAdmin tạo tài khoản admin nếu email chưa tồn tại
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		FirstName: "Admin",
		LastName:  "Admin",
		Email:     email,
		Password:  hashed,
		UserType:  constants.UserTypeAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("Đã tạo tài khoản admin %s", email)
	return nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	return s.tokens.GenerateToken(UserInfo{
		UserId:   user.ID,
		UserType: user.UserType,
		Email:    user.Email,
	})
}

func (s *AuthService) createGoogleUser(ctx context.Context, googleUser *dto.GoogleUser) (*models.User, error) {
	first, last := splitName(googleUser.Name)

	// Tài khoản Google không dùng mật khẩu, gán mật khẩu ngẫu nhiên
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	hashed, err := HashPassword(hex.EncodeToString(buf))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: first,
		LastName:  last,
		Email:     strings.ToLower(googleUser.Email),
		Password:  hashed,
		UserType:  constants.UserTypeCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
