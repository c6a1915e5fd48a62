package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"washpro-backend/models"
)

// Seed is the optional catalog file named by SEED_FILE.
type Seed struct {
	Services   []SeedService   `yaml:"services"`
	Milestones []SeedMilestone `yaml:"milestones"`
}

type SeedService struct {
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	Price             float64 `yaml:"price"`
	Duration          int     `yaml:"duration"`
	Category          string  `yaml:"category"`
	WasherCommission  float64 `yaml:"washer_commission"`
	CompanyCommission float64 `yaml:"company_commission"`
}

type SeedMilestone struct {
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	Type              string  `yaml:"type"`
	Operator          string  `yaml:"operator"`
	Value             float64 `yaml:"value"`
	Period            string  `yaml:"period"`
	RewardType        string  `yaml:"reward_type"`
	RewardAmount      float64 `yaml:"reward_amount"`
	RewardDescription string  `yaml:"reward_description"`
	AutoIssueBonus    bool    `yaml:"auto_issue_bonus"`
}

func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	for _, s := range seed.Services {
		if s.WasherCommission+s.CompanyCommission != 100 {
			return nil, fmt.Errorf("seed service %q: commission percentages must sum to 100", s.Name)
		}
	}
	return &seed, nil
}

// ApplySeed inserts catalog entries whose names are not in the database yet.
func ApplySeed(db *gorm.DB, seed *Seed) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range seed.Services {
			var count int64
			if err := tx.Model(&models.Service{}).Where("name = ?", s.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			category := s.Category
			if category == "" {
				category = "General"
			}
			svc := models.Service{
				Name:                        s.Name,
				Description:                 s.Description,
				Price:                       s.Price,
				Duration:                    s.Duration,
				Category:                    category,
				WasherCommissionPercentage:  s.WasherCommission,
				CompanyCommissionPercentage: s.CompanyCommission,
				IsActive:                    true,
			}
			if err := tx.Create(&svc).Error; err != nil {
				return fmt.Errorf("seeding service %q: %w", s.Name, err)
			}
			log.Printf("[seed] service %q created", s.Name)
		}

		for _, m := range seed.Milestones {
			var count int64
			if err := tx.Model(&models.Milestone{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			period := m.Period
			if period == "" {
				period = models.MilestonePeriodAllTime
			}
			rewardType := m.RewardType
			if rewardType == "" {
				rewardType = models.RewardTypeNone
			}
			milestone := models.Milestone{
				Name:              m.Name,
				Description:       m.Description,
				Type:              m.Type,
				Condition:         datatypes.NewJSONType(models.MilestoneCondition{Operator: m.Operator, Value: m.Value}),
				Period:            period,
				RewardType:        rewardType,
				RewardAmount:      m.RewardAmount,
				RewardQuantity:    1,
				RewardDescription: m.RewardDescription,
				AutoIssueBonus:    m.AutoIssueBonus,
				IsActive:          true,
			}
			if err := tx.Create(&milestone).Error; err != nil {
				return fmt.Errorf("seeding milestone %q: %w", m.Name, err)
			}
			log.Printf("[seed] milestone %q created", m.Name)
		}
		return nil
	})
}
