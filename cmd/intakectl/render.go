package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
)

var statusColors = map[domain.Status]func(a ...interface{}) string{
	domain.StatusNew:       color.New(color.FgYellow).SprintFunc(),
	domain.StatusPending:   color.New(color.FgCyan).SprintFunc(),
	domain.StatusApproved:  color.New(color.FgGreen).SprintFunc(),
	domain.StatusRejected:  color.New(color.FgRed).SprintFunc(),
	domain.StatusContacted: color.New(color.FgBlue).SprintFunc(),
}

func statusLabel(s domain.Status) string {
	if paint, ok := statusColors[s]; ok {
		return paint(string(s))
	}
	return string(s)
}

func renderStudents(w io.Writer, recs []domain.StudentRecord) {
	if len(recs) == 0 {
		color.Yellow("No student registrations found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Received", "Student", "Phone", "Class", "Subjects", "District", "Mode", "Budget", "Status"})
	table.SetAutoWrapText(false)
	for _, r := range recs {
		table.Append([]string{
			r.CreatedAt.Format("02 Jan 15:04"),
			r.StudentName,
			r.Phone,
			domain.GradeLabel(r.ClassGrade),
			strings.Join(r.Subjects, ", "),
			r.District,
			string(r.Mode),
			"Rs." + strconv.Itoa(r.MonthlyBudget),
			statusLabel(r.Status),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "Total", strconv.Itoa(len(recs))})
	table.Render()
}

func renderTutors(w io.Writer, recs []domain.TutorRecord) {
	if len(recs) == 0 {
		color.Yellow("No tutor registrations found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Received", "Name", "Phone", "Qualification", "Exp", "Subjects", "District", "Terms", "Status"})
	table.SetAutoWrapText(false)
	for _, r := range recs {
		terms := "-"
		if r.TermsAcceptedAt != nil {
			terms = r.TermsAcceptedAt.Format("02 Jan")
		}
		table.Append([]string{
			r.CreatedAt.Format("02 Jan 15:04"),
			r.FullName,
			r.Phone,
			r.Qualification,
			strconv.Itoa(r.ExperienceYears) + "y",
			strings.Join(r.Subjects, ", "),
			r.District,
			terms,
			statusLabel(r.Status),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "", "", "Total", strconv.Itoa(len(recs))})
	table.Render()
}
