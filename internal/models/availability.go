package models

import "time"

// TeacherAvailability is one bookable window. A recurring row applies to a
// weekday every week; a one-time row applies to a single calendar date.
// One-time rows add availability on top of recurring ones, they do not
// replace them.
type TeacherAvailability struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TeacherID uint `gorm:"index;not null" json:"teacher_id"`

	DayOfWeek int `json:"day_of_week"` // time.Weekday numbering, 0=Sunday

	StartTime string `gorm:"size:10;not null" json:"start_time"` // "09:00"
	EndTime   string `gorm:"size:10;not null" json:"end_time"`   // "12:00"

	IsRecurring  bool       `gorm:"default:true" json:"is_recurring"`
	SpecificDate *time.Time `gorm:"type:date" json:"specific_date"`

	CreatedAt time.Time `json:"created_at"`
}
