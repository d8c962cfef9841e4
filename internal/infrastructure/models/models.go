package models

// AllModels lists every table in migration order
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&ClientLocation{},
		&FamilyMember{},
		&Provider{},
		&Favorite{},
		&VerificationRecord{},
		&VerificationStage{},
		&Service{},
		&Booking{},
		&WalletAccount{},
		&WalletTransaction{},
	}
}

func (ClientLocation) TableName() string { return "client_locations" }

func (FamilyMember) TableName() string { return "family_members" }

func (VerificationStage) TableName() string { return "verification_stages" }
