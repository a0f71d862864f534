package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recipehub/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 在指定用户不存在时返回
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken 当用户名已被占用时返回（不区分大小写）
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken 当邮箱已被注册时返回
	ErrEmailTaken = errors.New("email already registered")
	// ErrWrongPassword 当密码校验失败时返回
	ErrWrongPassword = errors.New("wrong password")
	// ErrUserInvalid 当注册字段校验失败时返回
	ErrUserInvalid = errors.New("invalid user input")
)

// UserService 负责账号注册、认证与资料修改。
// 所有资料修改都要求携带当前密码。
type UserService struct {
	db *gorm.DB
}

// RegisterInput 定义注册账号所需的字段
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	DateOfBirth *time.Time
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register creates a new account with a bcrypt-hashed password. Emails and
// full names are stored lowercased; username uniqueness is checked
// case-insensitively.
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.ToLower(strings.TrimSpace(input.FullName))

	if len(username) < 2 {
		return nil, fmt.Errorf("%w: username must be at least 2 characters", ErrUserInvalid)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrUserInvalid)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrUserInvalid)
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrUserInvalid)
	}

	if err := s.checkUsernameFree(username, 0); err != nil {
		return nil, err
	}
	if err := s.checkEmailFree(email, 0); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		FullName:    fullName,
		DateOfBirth: input.DateOfBirth,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies the email/password pair and returns the account.
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

// Get 根据 ID 获取用户
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户（不区分大小写）
func (s *UserService) GetByEmail(email string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// ChangeUsername 在校验当前密码后更换用户名
func (s *UserService) ChangeUsername(id uint, username, password string) error {
	user, err := s.verify(id, password)
	if err != nil {
		return err
	}

	username = strings.TrimSpace(username)
	if len(username) < 2 {
		return fmt.Errorf("%w: username must be at least 2 characters", ErrUserInvalid)
	}
	if err := s.checkUsernameFree(username, id); err != nil {
		return err
	}

	user.Username = username
	return s.save(user)
}

// ChangeEmail 在校验当前密码后更换邮箱
func (s *UserService) ChangeEmail(id uint, email, password string) error {
	user, err := s.verify(id, password)
	if err != nil {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrUserInvalid)
	}
	if err := s.checkEmailFree(email, id); err != nil {
		return err
	}

	user.Email = email
	return s.save(user)
}

// ChangePassword 在校验当前密码后更换密码
func (s *UserService) ChangePassword(id uint, current, next string) error {
	user, err := s.verify(id, current)
	if err != nil {
		return err
	}
	if len(next) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrUserInvalid)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)
	return s.save(user)
}

// ChangeFullName 在校验当前密码后更换姓名
func (s *UserService) ChangeFullName(id uint, fullName, password string) error {
	user, err := s.verify(id, password)
	if err != nil {
		return err
	}

	fullName = strings.ToLower(strings.TrimSpace(fullName))
	if fullName == "" {
		return fmt.Errorf("%w: full name is required", ErrUserInvalid)
	}
	user.FullName = fullName
	return s.save(user)
}

// ChangeBirthday 在校验当前密码后更换出生日期
func (s *UserService) ChangeBirthday(id uint, birthday time.Time, password string) error {
	user, err := s.verify(id, password)
	if err != nil {
		return err
	}
	user.DateOfBirth = &birthday
	return s.save(user)
}

func (s *UserService) verify(id uint, password string) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}

func (s *UserService) save(user *db.User) error {
	if err := s.db.Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserService) checkUsernameFree(username string, selfID uint) error {
	var existing db.User
	query := s.db.Where("LOWER(username) = ?", strings.ToLower(username))
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.First(&existing).Error; err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

func (s *UserService) checkEmailFree(email string, selfID uint) error {
	var existing db.User
	query := s.db.Where("email = ?", email)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.First(&existing).Error; err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}
