package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MilestoneTypeVisits   = "visits"
	MilestoneTypeSpending = "spending"

	MilestonePeriodAllTime = "all_time"
	MilestonePeriodMonthly = "monthly"
	MilestonePeriodYearly  = "yearly"

	RewardTypeNone     = "none"
	RewardTypeMoney    = "money"
	RewardTypeItem     = "item"
	RewardTypeDiscount = "discount"
)

// MilestoneCondition is stored as JSON, e.g. {"operator": ">=", "value": 5}.
type MilestoneCondition struct {
	Operator string  `json:"operator"`
	Value    float64 `json:"value"`
}

type Milestone struct {
	BaseModel

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Type        string `gorm:"type:varchar(20);not null" json:"type"`

	Condition datatypes.JSONType[MilestoneCondition] `gorm:"not null" json:"condition"`
	Period    string                                 `gorm:"type:varchar(20);default:'all_time'" json:"period"`

	RewardType        string     `gorm:"type:varchar(20);default:'none'" json:"rewardType"`
	RewardAmount      float64    `gorm:"type:decimal(12,2);default:0" json:"rewardAmount"`
	RewardItemID      *uuid.UUID `gorm:"type:uuid" json:"rewardItemId"`
	RewardQuantity    int        `gorm:"default:1" json:"rewardQuantity"`
	RewardDescription string     `json:"rewardDescription"`
	AutoIssueBonus    bool       `gorm:"default:false" json:"autoIssueBonus"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

type MilestoneAchievement struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_customer_milestone" json:"customerId"`
	MilestoneID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_customer_milestone" json:"milestoneId"`
	AchievedValue float64    `gorm:"type:decimal(12,2)" json:"achievedValue"`
	AchievedAt    time.Time  `gorm:"not null" json:"achievedAt"`
	LastCheckedAt time.Time  `json:"lastCheckedAt"`
	BonusID       *uuid.UUID `gorm:"type:uuid" json:"bonusId"`
	CreatedAt     time.Time  `json:"createdAt"`

	Customer  *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Milestone *Milestone `gorm:"foreignKey:MilestoneID" json:"milestone,omitempty"`
}

func (a *MilestoneAchievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
