package service

import (
	"gorm.io/gorm"

	"smartcalda/entities"
)

type Service interface {
	Save(summaries []entities.RecommendationSummary, sent bool) (*entities.Report, error)
	List() ([]entities.Report, error)
	FindByID(id uint) (*entities.Report, error)
}

type service struct{ db *gorm.DB }

func New(db *gorm.DB) Service { return &service{db: db} }

// Save persists one finalize call as a history entry and denormalizes the
// fields the list view sorts and filters on.
func (s *service) Save(summaries []entities.RecommendationSummary, sent bool) (*entities.Report, error) {
	r := &entities.Report{
		Summaries:   summaries,
		SectorCount: len(summaries),
		Sent:        sent,
	}
	for _, sum := range summaries {
		r.TotalArea += sum.TotalArea
	}
	if len(summaries) > 0 {
		r.LeadSector = summaries[0].Sector
		r.LeadFarm = summaries[0].Farm
	}
	if err := s.db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) List() ([]entities.Report, error) {
	var out []entities.Report
	if err := s.db.Order("created_at desc, report_id desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) FindByID(id uint) (*entities.Report, error) {
	var r entities.Report
	if err := s.db.First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
