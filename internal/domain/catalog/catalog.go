// Package catalog holds the static course and subject table shown on the
// submission form. It is presentation data only: submitted course and subject
// values are never checked against it.
package catalog

// Course is a selectable course and the subjects offered under it.
type Course struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

var courses = []Course{
	{
		ID:       "development",
		Name:     "Systems Development",
		Subjects: []string{"Object-Oriented Programming", "Web Development", "Databases"},
	},
	{
		ID:       "analytics",
		Name:     "Data Analysis",
		Subjects: []string{"Statistics", "Machine Learning", "Data Mining"},
	},
}

// Courses returns a copy of the course table in display order.
func Courses() []Course {
	out := make([]Course, len(courses))
	for i, c := range courses {
		out[i] = Course{ID: c.ID, Name: c.Name, Subjects: append([]string(nil), c.Subjects...)}
	}
	return out
}

// SubjectsByCourse returns course id -> subjects, as consumed by the form script.
func SubjectsByCourse() map[string][]string {
	m := make(map[string][]string, len(courses))
	for _, c := range courses {
		m[c.ID] = append([]string(nil), c.Subjects...)
	}
	return m
}
