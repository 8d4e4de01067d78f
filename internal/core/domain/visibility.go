package domain

// Visibility tells a form which optional fields apply to a category.
type Visibility struct {
	ShowSyllabus           bool `json:"show_syllabus"`
	ShowUniversityFields   bool `json:"show_university_fields"`
	ShowSubjectChecklist   bool `json:"show_subject_checklist"`
	ShowCustomSubjectInput bool `json:"show_custom_subject_input"`
}

// Resolve returns the field visibility for a category. School gets the
// syllabus picker and the subject checklist; every other category gets a
// single free-text subject field.
func Resolve(c Category) Visibility {
	school := c == CategorySchool
	return Visibility{
		ShowSyllabus:           school,
		ShowUniversityFields:   c == CategoryHigherEducation,
		ShowSubjectChecklist:   school,
		ShowCustomSubjectInput: !school,
	}
}
