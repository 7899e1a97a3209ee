package services

import (
    "errors"

    "github.com/Siddhant-kochhar/goatfit/config"
    "github.com/Siddhant-kochhar/goatfit/models"
    "github.com/Siddhant-kochhar/goatfit/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:             email,
		Password:          hashedPassword,
		FullName:          fullName,
		MonitoringEnabled: true,
		CheckIntervalSec:  60,
	}

	return config.DB.Create(&user).Error
}

func AuthenticateUser(email, password string) (string, error) {
    var user models.User
    if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
        return "", errors.New("user not found")
    }

    if !utils.CheckPasswordHash(password, user.Password) {
        return "", errors.New("incorrect password")
    }

    return utils.GenerateJWT(user.Email)
}
