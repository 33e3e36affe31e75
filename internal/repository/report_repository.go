package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adilet/gigpay-ledger/internal/model"
)

// ReportStore serves the read-only aggregations over paid jobs.
type ReportStore interface {
	BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionTotal, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientTotal, error)
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ ReportStore = (*ReportRepository)(nil)

// BestProfession returns the profession that earned the most over paid
// jobs inside the inclusive range, or nil when no jobs match. Equal
// totals break by profession name ascending so output is stable.
func (r *ReportRepository) BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionTotal, error) {
	var result model.ProfessionTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			contractor.profession AS profession,
			SUM(j.price) AS total_paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles contractor ON contractor.id = c.contractor_id
		WHERE j.paid = true
			AND j.payment_date BETWEEN ? AND ?
		GROUP BY contractor.profession
		ORDER BY total_paid DESC, profession ASC
		LIMIT 1
	`, start, end).Scan(&result).Error
	if err != nil {
		return nil, err
	}
	if result.Profession == "" {
		return nil, nil
	}
	return &result, nil
}

func (r *ReportRepository) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientTotal, error) {
	var clients []model.ClientTotal
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			client.id AS id,
			client.first_name || ' ' || client.last_name AS full_name,
			SUM(j.price) AS paid
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles client ON client.id = c.client_id
		WHERE j.paid = true
			AND j.payment_date BETWEEN ? AND ?
		GROUP BY client.id, client.first_name, client.last_name
		ORDER BY paid DESC
		LIMIT ?
	`, start, end, limit).Scan(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
