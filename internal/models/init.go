package models

import (
	"strings"

	"github.com/papelaria-next/internal/constants"
	"github.com/papelaria-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultOperatorPassword = "admin123"

// InitDefaultOperator 初始化默认平台运营账号
func InitDefaultOperator(email, password string) error {
	var count int64
	if err := DB.Model(&Admin{}).Where("role = ?", constants.RoleOperator).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@papelaria.local"
	}
	if password == "" {
		password = defaultOperatorPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleOperator,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultOperatorPassword {
		logger.Warnw("default_operator_created_with_default_password", "email", email)
		logger.Warnw("default_operator_password_change_required", "email", email)
	} else {
		logger.Warnw("default_operator_created", "email", email, "password_hidden", true)
	}
	return nil
}
