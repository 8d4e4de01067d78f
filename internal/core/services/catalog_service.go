package services

import (
	"context"
	"log"

	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/domain"
	"github.com/AchilleasB/tutor-agency/intake-service/internal/core/ports"
)

type CatalogService struct {
	subjects ports.SubjectRepository
}

var _ ports.CatalogService = (*CatalogService)(nil)

func NewCatalogService(subjects ports.SubjectRepository) *CatalogService {
	return &CatalogService{subjects: subjects}
}

// Catalog describes the form for a grade: which fields show, the subject
// checklist and the slider bounds.
func (s *CatalogService) Catalog(classGrade string) ports.CatalogView {
	c := domain.Classify(classGrade)
	v := domain.Resolve(c)
	cv := ports.CatalogView{
		ClassGrade:  classGrade,
		Category:    c,
		Visibility:  v,
		Districts:   domain.Districts,
		RateSlider:  domain.RateSlider(classGrade),
		HoursSlider: domain.HoursSlider,
	}
	if v.ShowSubjectChecklist {
		cv.Subjects = domain.SchoolSubjects
	}
	if v.ShowSyllabus {
		cv.Syllabi = domain.Syllabi
	}
	return cv
}

// Subjects lists the subjects table, falling back to the built-in school
// checklist when the table is empty or unreachable.
func (s *CatalogService) Subjects(ctx context.Context) ([]ports.Subject, error) {
	if s.subjects != nil {
		list, err := s.subjects.ListSubjects(ctx)
		if err == nil && len(list) > 0 {
			return list, nil
		}
		if err != nil {
			log.Printf("catalog: subjects lookup failed, using built-in list: %v", err)
		}
	}

	list := make([]ports.Subject, len(domain.SchoolSubjects))
	for i, name := range domain.SchoolSubjects {
		list[i] = ports.Subject{Name: name, Category: domain.CategorySchool}
	}
	return list, nil
}
