package models

// TimeSlot is one weekly meeting block of a course. Start is inclusive and
// End exclusive, both whole hours. Date optionally pins the slot to a
// concrete calendar day. Slots are replaced wholesale on course update,
// never mutated in place.
type TimeSlot struct {
	Day   string `json:"day"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Date  string `json:"date,omitempty"`
}

// Course is a catalog entry. Enrolled is maintained exclusively by the
// enrollment engine under the course lock and always satisfies
// 0 <= Enrolled <= Capacity after any completed operation.
type Course struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Credit   int        `json:"credit"`
	Capacity int        `json:"capacity"`
	Enrolled int        `json:"enrolled"`
	Times    []TimeSlot `json:"times"`
}

// CourseFilter narrows course listings. Nil fields mean unconstrained; Day
// matches case-sensitively against slot days.
type CourseFilter struct {
	MinCredit *int
	MaxCredit *int
	Day       string
}
