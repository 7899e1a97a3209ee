package services

import (
    "github.com/Siddhant-kochhar/goatfit/config"
    "github.com/Siddhant-kochhar/goatfit/models"
)

func FindUserByEmail(email string) (*models.User, error) {
    var user models.User
    if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
        return nil, err
    }
    return &user, nil
}

func GetUserByID(userID uint) (*models.User, error) {
    var user models.User
    if err := config.DB.First(&user, userID).Error; err != nil {
        return nil, err
    }
    return &user, nil
}

func UpdateProfile(userID uint, fullName string) error {
    return config.DB.Model(&models.User{}).
        Where("id = ?", userID).
        Update("full_name", fullName).Error
}

// SetMonitoringEnabled flips the background monitoring flag for a user.
func SetMonitoringEnabled(userID uint, enabled bool) error {
    return config.DB.Model(&models.User{}).
        Where("id = ?", userID).
        Update("monitoring_enabled", enabled).Error
}

// SetCheckInterval updates the per-user check cadence, clamped to
// [30s, 1h].
func SetCheckInterval(userID uint, seconds int) error {
    if seconds < 30 {
        seconds = 30
    }
    if seconds > 3600 {
        seconds = 3600
    }
    return config.DB.Model(&models.User{}).
        Where("id = ?", userID).
        Update("check_interval_sec", seconds).Error
}

// LinkGoogleAccount stores the oauth token JSON and marks the account
// fitness-linked.
func LinkGoogleAccount(userID uint, tokenJSON string) error {
    return config.DB.Model(&models.User{}).
        Where("id = ?", userID).
        Updates(map[string]interface{}{
            "google_token":   tokenJSON,
            "fitness_linked": true,
        }).Error
}
