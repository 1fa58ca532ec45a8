package console

import (
	"errors"

	"gorm.io/gorm"
)

func GetCompanies(db *gorm.DB) ([]Company, error) {
	var companies []Company
	err := db.Find(&companies).Error
	return companies, err
}

func FindSubscriptionByDomain(db *gorm.DB, domain string) (*Subscription, error) {
	var sub Subscription
	err := db.Where(&Subscription{Domain: domain}).Preload("Company").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &sub, err
}
