package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/example/goshop/internal/auth"
	"github.com/example/goshop/internal/config"
	"github.com/example/goshop/internal/datamodels/staff"
)

// StaffService 后台员工账号：注册走种子脚本，登录换 JWT
type StaffService struct {
	repo staff.Repository
	jwt  *config.JWTConfig
}

// NewStaffService 创建员工服务
func NewStaffService(repo staff.Repository, jwt *config.JWTConfig) *StaffService {
	return &StaffService{repo: repo, jwt: jwt}
}

func hashPassword(raw, salt string) string {
	h := sha256.Sum256([]byte(raw + salt))
	return hex.EncodeToString(h[:])
}

// Register 创建员工账号
func (s *StaffService) Register(ctx context.Context, username, password string) (*staff.Staff, error) {
	st := &staff.Staff{
		Username: username,
		Salt:     "goshop", // 简化实现，真实业务请使用随机盐
	}
	st.Password = hashPassword(password, st.Salt)
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Login 登录并返回 JWT
func (s *StaffService) Login(ctx context.Context, username, password string) (string, error) {
	st, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if hashPassword(password, st.Salt) != st.Password {
		return "", errors.New("invalid password")
	}
	return auth.GenerateToken(s.jwt, st.ID, st.Username)
}
