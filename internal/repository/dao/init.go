package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Club{},
		&Membership{},
		&Event{},
		&Enrollment{},
		&Badge{},
		&UserBadge{},
		&News{},
		&ForumTopic{},
		&ForumPost{},
		&MenuEntry{},
		&CalendarEntry{},
	)
	if err != nil {
		return err
	}

	return seedBadges(db)
}

// seedBadges makes sure the badge catalog exists. The rule engine looks
// badges up by name, so the catalog is part of the schema, not user data.
func seedBadges(db *gorm.DB) error {
	catalog := []Badge{
		{Name: "Membro Pioneiro", Description: "Um dos 10 primeiros.", IconClass: "fas fa-rocket"},
		{Name: "Explorador de Clubes", Description: "Entrou no primeiro clube.", IconClass: "fas fa-compass"},
	}

	for _, badge := range catalog {
		result := db.Where("name = ?", badge.Name).FirstOrCreate(&badge)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}
