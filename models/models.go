package models

// All lists every table the application owns, in migration order.
func All() []interface{} {
	return []interface{}{
		&Admin{},
		&Washer{},
		&Customer{},
		&Vehicle{},
		&Service{},
		&CheckIn{},
		&CheckInService{},
		&CheckInWasher{},
		&InventoryItem{},
		&Sale{},
		&SaleItem{},
		&Milestone{},
		&MilestoneAchievement{},
		&Bonus{},
		&WasherTool{},
		&ToolCharge{},
		&PaymentRequest{},
		&MessageTemplate{},
		&NotificationLog{},
		&BusinessSettings{},
	}
}
