package domain

import "time"

// MenuEntry is one day of the cafeteria menu.
type MenuEntry struct {
	ID         uint      `json:"id"`
	Date       time.Time `json:"date"`
	MainDish   string    `json:"main_dish"`
	Vegetarian string    `json:"vegetarian"`
	SideDish   string    `json:"side_dish"`
	Salad      string    `json:"salad"`
	Dessert    string    `json:"dessert"`
}

// CalendarEntry is one row of the academic calendar.
type CalendarEntry struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
}
