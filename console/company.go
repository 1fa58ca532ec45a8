package console

import (
	"time"
)

// Company is one customer security firm.
type Company struct {
	ID        int       `gorm:"primaryKey;autoIncrement;column:id"`
	Code      string    `gorm:"size:255;not null;unique;column:code"`
	Name      string    `gorm:"size:255;not null;unique;column:name"`
	Email     string    `gorm:"size:255;not null;unique;column:email"`
	ABN       *string   `gorm:"size:255;unique;column:abn"`
	CreatedAt time.Time `gorm:"precision:6;autoCreateTime;column:createdAt"`
	UpdatedAt time.Time `gorm:"precision:6;autoUpdateTime;column:updatedAt"`
	Version   int       `gorm:"not null;column:version"`
}

// Subscription binds a company to its tenant domain. The domain's first
// label is the tenant schema name the API switches to per request.
type Subscription struct {
	ID          int        `gorm:"column:id;primaryKey;autoIncrement"`
	Key         string     `gorm:"column:key;type:varchar(255);not null"`
	Guards      int        `gorm:"column:guards;not null"`
	Edition     string     `gorm:"column:edition;type:varchar(255);not null"`
	Domain      string     `gorm:"column:domain;type:varchar(255);not null"`
	ExpiredAt   time.Time  `gorm:"column:expiredAt;not null"`
	SyncedAt    *time.Time `gorm:"column:syncedAt"`
	CreatedAt   time.Time  `gorm:"column:createdAt;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updatedAt;autoUpdateTime"`
	Version     int        `gorm:"column:version;not null"`
	CompanyID   *int       `gorm:"column:companyId"`
	Deactivated int8       `gorm:"column:deactivated;not null"`
	Environment string     `gorm:"column:environment;type:varchar(50);not null;default:production"`

	Company Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
