package domain

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
)

var gradeLabels = map[string]string{
	"btech": "B.Tech", "mtech": "M.Tech", "bsc": "B.Sc", "msc": "M.Sc",
	"bcom": "B.Com", "mcom": "M.Com", "ba": "BA", "ma": "MA",
	"bba": "BBA", "mba": "MBA", "bca": "BCA", "mca": "MCA",
	"music-vocal": "Music (Vocal)", "music-instrumental": "Music (Instrumental)",
	"dance": "Dance", "drawing": "Drawing", "painting": "Painting",
	"neet": "NEET", "jee": "JEE", "keam": "KEAM", "cuet": "CUET", "psc": "Kerala PSC",
}

// GradeLabel is the human-readable name of a class/grade code.
func GradeLabel(code string) string {
	code = normalizeGrade(code)
	if schoolGradeNumber(code) > 0 {
		return "Class " + code
	}
	if l, ok := gradeLabels[code]; ok {
		return l
	}
	return code
}

// localities maps well-known areas to the town tutors search by.
var localities = map[string]string{
	"kakkanad":      "Kochi",
	"edappally":     "Kochi",
	"vyttila":       "Kochi",
	"kaloor":        "Kochi",
	"palarivattom":  "Kochi",
	"tripunithura":  "Kochi",
	"aluva":         "Kochi",
	"pattom":        "Thiruvananthapuram",
	"kazhakkoottam": "Thiruvananthapuram",
	"technopark":    "Thiruvananthapuram",
	"kowdiar":       "Thiruvananthapuram",
	"vazhuthacaud":  "Thiruvananthapuram",
	"calicut":       "Kozhikode",
	"mavoor road":   "Kozhikode",
	"punkunnam":     "Thrissur",
	"ayyanthole":    "Thrissur",
	"kanjikode":     "Palakkad",
	"nagampadam":    "Kottayam",
}

// Locality returns the broader locality for a known area, or the area itself.
func Locality(area string) string {
	area = strings.TrimSpace(area)
	if l, ok := localities[strings.ToLower(area)]; ok {
		return l
	}
	return area
}

// Formatter renders the human-readable enquiry text shared on WhatsApp and
// copied from the admin dashboard.
type Formatter struct {
	ContactNumber string
	Now           func() time.Time
	RandN         func(n int) int
}

func NewFormatter(contactNumber string) *Formatter {
	return &Formatter{ContactNumber: contactNumber, Now: time.Now, RandN: rand.IntN}
}

// ReferenceCode is EN + yymmdd + a 3-digit random suffix. It is cosmetic
// and may collide; the record ID is the real key.
func (f *Formatter) ReferenceCode() string {
	return f.ReferenceCodeAt(f.Now())
}

func (f *Formatter) ReferenceCodeAt(t time.Time) string {
	return fmt.Sprintf("EN%s%03d", t.Format("060102"), f.RandN(1000))
}

func (f *Formatter) StudentMessage(rec StudentRecord, ref string) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	b.WriteString("*New Tuition Enquiry*\n")
	line("Ref", ref)
	line("Subject", strings.Join(rec.Subjects, ", "))
	line("Class", GradeLabel(rec.ClassGrade))
	if rec.Syllabus != nil {
		line("Syllabus", *rec.Syllabus)
	}
	if rec.University != nil {
		uni := *rec.University
		if rec.Branch != nil {
			uni += " (" + *rec.Branch + ")"
		}
		line("University", uni)
	}
	line("Location", locationText(rec))
	line("Tutor", genderText(rec.TutorGender))
	line("Language", valueOr(rec.Languages, "Any"))
	if rec.HourlyRate != nil && rec.HoursPerMonth != nil {
		line("Hours", fmt.Sprintf("%d hrs/month @ Rs.%d/hr (approx Rs.%d/month)",
			*rec.HoursPerMonth, *rec.HourlyRate, *rec.HoursPerMonth**rec.HourlyRate))
	} else {
		line("Budget", fmt.Sprintf("Rs.%d/month", rec.MonthlyBudget))
	}
	line("Contact", f.ContactNumber)
	b.WriteString("Note: " + noteText(rec))
	return b.String()
}

func locationText(rec StudentRecord) string {
	if rec.Mode == ModeOnline {
		return "Online"
	}
	loc := rec.District
	if rec.Area != nil {
		loc = *rec.Area + ", " + rec.District
	}
	if rec.Mode == ModeBoth {
		loc += " / Online"
	}
	return loc
}

func noteText(rec StudentRecord) string {
	if rec.Mode == ModeOnline {
		return "Online class, tutors from any location"
	}
	area := rec.District
	if rec.Area != nil {
		area = *rec.Area
	}
	return "Tutors near " + Locality(area) + " preferred"
}

func genderText(g *string) string {
	if g == nil {
		return "Any"
	}
	switch GenderPreference(*g) {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	}
	return "Any"
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// WhatsAppURL builds a wa.me deep link with the message as prefilled text.
func WhatsAppURL(phone, text string) string {
	return "https://wa.me/" + PhoneDigits(phone) + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
