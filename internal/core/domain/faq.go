package domain

import (
	"strings"
	"unicode"
)

type FAQRule struct {
	Topic    string
	Keywords []string
	Answer   string
}

// FAQRules are matched by keyword hits; the rule with the most hits wins
// and earlier rules win ties.
var FAQRules = []FAQRule{
	{
		Topic:    "fees",
		Keywords: []string{"fee", "fees", "cost", "price", "charge", "rate", "budget"},
		Answer:   "Fees start at Rs.250/hr for classes 1-6, Rs.300/hr for classes 7-10, Rs.350/hr for classes 11-12 and Rs.400/hr for college, arts and entrance coaching.",
	},
	{
		Topic:    "online",
		Keywords: []string{"online", "zoom", "video", "remote"},
		Answer:   "Yes, we offer online classes as well as home tuition. Choose Online or Both when you register.",
	},
	{
		Topic:    "register-student",
		Keywords: []string{"register", "registration", "enroll", "join", "tutor for", "need a tutor", "find"},
		Answer:   "Fill the student registration form with the class, subjects and location. Our team will call you with a matching tutor.",
	},
	{
		Topic:    "become-tutor",
		Keywords: []string{"become", "teach", "teacher", "job", "vacancy", "apply"},
		Answer:   "Register as a tutor from the Tutors page. After reviewing your profile we will share the tutor agreement for acceptance.",
	},
	{
		Topic:    "areas",
		Keywords: []string{"area", "district", "location", "where", "available", "kerala"},
		Answer:   "We provide home tutors in all 14 districts of Kerala and online tutors everywhere.",
	},
	{
		Topic:    "demo",
		Keywords: []string{"demo", "trial", "free class"},
		Answer:   "A demo class can be arranged before you confirm the tutor.",
	},
	{
		Topic:    "replacement",
		Keywords: []string{"change", "replace", "replacement", "not happy", "unhappy"},
		Answer:   "If you are not satisfied with the tutor we will arrange a replacement.",
	},
}

// FAQReply picks the best matching answer, or a fallback pointing to the
// agency contact number.
func FAQReply(question, contactNumber string) (topic, answer string) {
	q := " " + normalizeQuestion(question) + " "
	best, bestHits := -1, 0
	for i, r := range FAQRules {
		hits := 0
		for _, k := range r.Keywords {
			if strings.Contains(q, " "+k+" ") {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}
	if best < 0 {
		return "fallback", "Sorry, I could not find an answer to that. Please call or WhatsApp us on " + contactNumber + "."
	}
	return FAQRules[best].Topic, FAQRules[best].Answer
}

func normalizeQuestion(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
