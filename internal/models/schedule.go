package models

import "time"

// ScheduleEntry represents one lesson of a class on a calendar date. A nil
// SubgroupID means the lesson is for the whole class.
type ScheduleEntry struct {
	ID           string    `db:"id" json:"id"`
	ClassID      string    `db:"class_id" json:"class_id"`
	SubjectID    string    `db:"subject_id" json:"subject_id"`
	TeacherID    string    `db:"teacher_id" json:"teacher_id"`
	ScheduleDate time.Time `db:"schedule_date" json:"schedule_date"`
	SlotNumber   int       `db:"slot_number" json:"slot_number"`
	Room         string    `db:"room" json:"room"`
	SubgroupID   *string   `db:"subgroup_id" json:"subgroup_id,omitempty"`
}

// DateRange bounds a schedule query, inclusive on both ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DisplayEntry is a schedule entry enriched with its resolved time, derived
// day of week and subgroup name, ready for presentation.
type DisplayEntry struct {
	ScheduleEntry
	StartTime      string     `json:"start_time,omitempty"`
	EndTime        string     `json:"end_time,omitempty"`
	SlotSource     SlotSource `json:"slot_source,omitempty"`
	TimeUnresolved bool       `json:"time_unresolved"`
	DayOfWeek      int        `json:"day_of_week"`
	SubgroupName   *string    `json:"subgroup_name,omitempty"`
}
