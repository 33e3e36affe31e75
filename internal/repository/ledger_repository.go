package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adilet/gigpay-ledger/internal/model"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ Store = (*LedgerRepository)(nil)

func (r *LedgerRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return getProfile(r.db.WithContext(ctx), id, false)
}

func (r *LedgerRepository) GetContractForParty(ctx context.Context, contractID, partyID uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status
		FROM contracts
		WHERE id = ?
			AND (client_id = ? OR contractor_id = ?)
		LIMIT 1
	`, contractID, partyID, partyID).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (r *LedgerRepository) ListActiveContracts(ctx context.Context, partyID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, contractor_id, terms, status
		FROM contracts
		WHERE status <> 'terminated'
			AND (client_id = ? OR contractor_id = ?)
		ORDER BY created_at ASC
	`, partyID, partyID).Scan(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *LedgerRepository) ListUnpaidJobs(ctx context.Context, partyID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Raw(`
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE (j.paid IS NULL OR j.paid = false)
			AND c.status = 'in_progress'
			AND (c.client_id = ? OR c.contractor_id = ?)
		ORDER BY j.created_at ASC
	`, partyID, partyID).Scan(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *LedgerRepository) GetJobDetailForParty(ctx context.Context, jobID, partyID uuid.UUID) (*model.JobDetail, error) {
	return getJobDetail(r.db.WithContext(ctx), jobID, partyID, false)
}

func (r *LedgerRepository) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx})
	})
}

// ledgerTx is the transaction-scoped store handed to InTx callbacks.
type ledgerTx struct {
	db *gorm.DB
}

var _ Tx = (*ledgerTx)(nil)

func (t *ledgerTx) JobDetailForUpdate(ctx context.Context, jobID, partyID uuid.UUID) (*model.JobDetail, error) {
	return getJobDetail(t.db.WithContext(ctx), jobID, partyID, true)
}

func (t *ledgerTx) ProfileForUpdate(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return getProfile(t.db.WithContext(ctx), id, true)
}

func (t *ledgerTx) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return t.db.WithContext(ctx).Exec(`
		UPDATE profiles SET balance = ? WHERE id = ?
	`, balance, id).Error
}

func (t *ledgerTx) MarkJobPaid(ctx context.Context, jobID uuid.UUID, paymentDate time.Time) error {
	return t.db.WithContext(ctx).Exec(`
		UPDATE jobs SET paid = true, payment_date = ? WHERE id = ?
	`, paymentDate, jobID).Error
}

func (t *ledgerTx) OutstandingForClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	var row struct {
		Outstanding decimal.Decimal
	}
	err := t.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(j.price), 0) AS outstanding
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = ?
			AND (j.paid IS NULL OR j.paid = false)
	`, clientID).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Outstanding, nil
}

func getProfile(db *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Profile, error) {
	query := `
		SELECT id, first_name, last_name, profession, balance, type
		FROM profiles
		WHERE id = ?
		LIMIT 1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var profile model.Profile
	if err := db.Raw(query, id).Scan(&profile).Error; err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func getJobDetail(db *gorm.DB, jobID, partyID uuid.UUID, forUpdate bool) (*model.JobDetail, error) {
	var row struct {
		ID                   uuid.UUID
		ContractID           uuid.UUID
		Description          string
		Price                decimal.Decimal
		Paid                 *bool
		PaymentDate          *time.Time
		ClientID             uuid.UUID
		ContractorID         uuid.UUID
		Terms                string
		Status               model.ContractStatus
		ClientFirstName      string
		ClientLastName       string
		ClientProfession     string
		ClientBalance        decimal.Decimal
		ContractorFirstName  string
		ContractorLastName   string
		ContractorProfession string
		ContractorBalance    decimal.Decimal
	}

	query := `
		SELECT
			j.id,
			j.contract_id,
			j.description,
			j.price,
			j.paid,
			j.payment_date,
			c.client_id,
			c.contractor_id,
			c.terms,
			c.status,
			client.first_name AS client_first_name,
			client.last_name AS client_last_name,
			client.profession AS client_profession,
			client.balance AS client_balance,
			contractor.first_name AS contractor_first_name,
			contractor.last_name AS contractor_last_name,
			contractor.profession AS contractor_profession,
			contractor.balance AS contractor_balance
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		JOIN profiles client ON client.id = c.client_id
		JOIN profiles contractor ON contractor.id = c.contractor_id
		WHERE j.id = ?
			AND (c.client_id = ? OR c.contractor_id = ?)
	`
	if forUpdate {
		query += ` FOR UPDATE OF j`
	}

	if err := db.Raw(query, jobID, partyID, partyID).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.JobDetail{
		Job: model.Job{
			ID:          row.ID,
			ContractID:  row.ContractID,
			Description: row.Description,
			Price:       row.Price,
			Paid:        row.Paid,
			PaymentDate: row.PaymentDate,
		},
		Contract: model.Contract{
			ID:           row.ContractID,
			ClientID:     row.ClientID,
			ContractorID: row.ContractorID,
			Terms:        row.Terms,
			Status:       row.Status,
		},
		Client: model.Profile{
			ID:         row.ClientID,
			FirstName:  row.ClientFirstName,
			LastName:   row.ClientLastName,
			Profession: row.ClientProfession,
			Balance:    row.ClientBalance,
			Type:       model.ProfileTypeClient,
		},
		Contractor: model.Profile{
			ID:         row.ContractorID,
			FirstName:  row.ContractorFirstName,
			LastName:   row.ContractorLastName,
			Profession: row.ContractorProfession,
			Balance:    row.ContractorBalance,
			Type:       model.ProfileTypeContractor,
		},
	}, nil
}
