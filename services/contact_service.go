package services

import (
    "github.com/Siddhant-kochhar/goatfit/config"
    "github.com/Siddhant-kochhar/goatfit/models"
)

func ListContacts(userID uint) ([]models.EmergencyContact, error) {
    var contacts []models.EmergencyContact
    err := config.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&contacts).Error
    return contacts, err
}

func GetContact(userID, contactID uint) (*models.EmergencyContact, error) {
    var contact models.EmergencyContact
    err := config.DB.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
    if err != nil {
        return nil, err
    }
    return &contact, nil
}

func AddContact(contact *models.EmergencyContact) error {
    return config.DB.Create(contact).Error
}

func UpdateContact(contact *models.EmergencyContact) error {
    return config.DB.Save(contact).Error
}

func DeleteContact(userID, contactID uint) error {
    return config.DB.Where("id = ? AND user_id = ?", contactID, userID).
        Delete(&models.EmergencyContact{}).Error
}
