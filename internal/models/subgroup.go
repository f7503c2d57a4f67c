package models

// Subgroup is a named subset of a class's students used to scope lessons,
// e.g. a language-elective split.
type Subgroup struct {
	ID      string `db:"id" json:"id"`
	ClassID string `db:"class_id" json:"class_id"`
	Name    string `db:"name" json:"name"`
}

// SubgroupMembership links a student to a subgroup of their class.
type SubgroupMembership struct {
	StudentID  string `db:"student_id" json:"student_id"`
	SubgroupID string `db:"subgroup_id" json:"subgroup_id"`
}
