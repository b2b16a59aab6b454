package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UpdateProfileReq struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileReq) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUsers(page, limit int, role string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, role)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

type AdminUpdateUserReq struct {
	Name     *string         `json:"name"`
	Role     *model.UserRole `json:"role"`
	Disabled *bool           `json:"disabled"`
}

func (s *UserService) AdminUpdateUser(id uint, req AdminUpdateUserReq) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ResetPassword(id uint, newPassword string) error {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

func (s *UserService) DeleteUser(id uint) error {
	return s.UserRepo.Delete(id)
}
