package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&TasteProfile{},
		&Restaurant{},
		&Dish{},
		&UserAchievement{},
		&UserStats{},
		&PhotoUpload{},
	}
}
