package domain

import "strings"

type Category string

const (
	CategorySchool          Category = "school"
	CategoryHigherEducation Category = "higher-education"
	CategoryArts            Category = "arts"
	CategoryEntranceExam    Category = "entrance-exam"
)

// SchoolGrades are the school class codes, in display order.
var SchoolGrades = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

var HigherEducationGrades = []string{
	"btech", "mtech", "bsc", "msc", "bcom", "mcom", "ba", "ma", "bba", "mba", "bca", "mca",
}

var ArtsGrades = []string{
	"music-vocal", "music-instrumental", "dance", "drawing", "painting",
}

var EntranceExamGrades = []string{
	"neet", "jee", "keam", "cuet", "psc",
}

var gradeCategories = func() map[string]Category {
	m := make(map[string]Category)
	for _, g := range HigherEducationGrades {
		m[g] = CategoryHigherEducation
	}
	for _, g := range ArtsGrades {
		m[g] = CategoryArts
	}
	for _, g := range EntranceExamGrades {
		m[g] = CategoryEntranceExam
	}
	return m
}()

// Classify maps a class/grade code to its category. Codes that are not
// listed as higher-education, arts or entrance-exam fall back to school.
func Classify(classGrade string) Category {
	if c, ok := gradeCategories[normalizeGrade(classGrade)]; ok {
		return c
	}
	return CategorySchool
}

// AllGrades returns every known class/grade code.
func AllGrades() []string {
	all := make([]string, 0, len(SchoolGrades)+len(gradeCategories))
	all = append(all, SchoolGrades...)
	all = append(all, HigherEducationGrades...)
	all = append(all, ArtsGrades...)
	all = append(all, EntranceExamGrades...)
	return all
}

// IsKnownGrade reports whether code belongs to the fixed grade enumeration.
func IsKnownGrade(code string) bool {
	code = normalizeGrade(code)
	if _, ok := gradeCategories[code]; ok {
		return true
	}
	return schoolGradeNumber(code) > 0
}

// schoolGradeNumber returns 1..12 for school codes and 0 for anything else.
func schoolGradeNumber(code string) int {
	for i, g := range SchoolGrades {
		if g == code {
			return i + 1
		}
	}
	return 0
}

func normalizeGrade(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
