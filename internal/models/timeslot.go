package models

import "time"

// SlotSource marks which layer an effective slot time came from.
type SlotSource string

const (
	SlotSourceDefault  SlotSource = "default"
	SlotSourceOverride SlotSource = "override"
)

// TimeSlotDefault is a school-wide lesson-number to time-of-day mapping.
// Times are wall-clock HH:MM strings, school-local.
type TimeSlotDefault struct {
	SlotNumber int    `db:"slot_number" json:"slot_number"`
	StartTime  string `db:"start_time" json:"start_time"`
	EndTime    string `db:"end_time" json:"end_time"`
}

// ClassTimeSlotOverride replaces the default time for one slot of one class.
// At most one override exists per (class_id, slot_number).
type ClassTimeSlotOverride struct {
	ID         string    `db:"id" json:"id"`
	ClassID    string    `db:"class_id" json:"class_id"`
	SlotNumber int       `db:"slot_number" json:"slot_number"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// EffectiveSlot is the time actually used for a class's slot number after
// applying override precedence. Derived on read, never stored.
type EffectiveSlot struct {
	SlotNumber int        `json:"slot_number"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Source     SlotSource `json:"source"`
}

// EffectiveSlotList pairs the merged slots with any overrides that reference
// a slot number without a default. Orphans are advisory, never hidden.
type EffectiveSlotList struct {
	Slots           []EffectiveSlot         `json:"slots"`
	OrphanOverrides []ClassTimeSlotOverride `json:"orphan_overrides,omitempty"`
}
