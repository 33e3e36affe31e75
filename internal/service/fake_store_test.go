package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adilet/gigpay-ledger/internal/model"
	"github.com/adilet/gigpay-ledger/internal/repository"
)

// fakeStore is an in-memory Store. InTx snapshots state and restores
// it when the callback fails, mirroring the rollback the real store
// gets from the database.
type fakeStore struct {
	profiles  map[uuid.UUID]model.Profile
	contracts map[uuid.UUID]model.Contract
	jobs      map[uuid.UUID]model.Job

	markPaidErr    error
	outstandingErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:  make(map[uuid.UUID]model.Profile),
		contracts: make(map[uuid.UUID]model.Contract),
		jobs:      make(map[uuid.UUID]model.Job),
	}
}

func (f *fakeStore) addProfile(p model.Profile) model.Profile {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.profiles[p.ID] = p
	return p
}

func (f *fakeStore) addContract(c model.Contract) model.Contract {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.contracts[c.ID] = c
	return c
}

func (f *fakeStore) addJob(j model.Job) model.Job {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	f.jobs[j.ID] = j
	return j
}

func (f *fakeStore) balance(id uuid.UUID) decimal.Decimal {
	return f.profiles[id].Balance
}

func (f *fakeStore) GetProfile(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (f *fakeStore) GetContractForParty(_ context.Context, contractID, partyID uuid.UUID) (*model.Contract, error) {
	contract, ok := f.contracts[contractID]
	if !ok || !contract.IsParty(partyID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (f *fakeStore) ListActiveContracts(_ context.Context, partyID uuid.UUID) ([]model.Contract, error) {
	var contracts []model.Contract
	for _, contract := range f.contracts {
		if contract.IsParty(partyID) && contract.Status != model.ContractStatusTerminated {
			contracts = append(contracts, contract)
		}
	}
	return contracts, nil
}

func (f *fakeStore) ListUnpaidJobs(_ context.Context, partyID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	for _, job := range f.jobs {
		contract, ok := f.contracts[job.ContractID]
		if !ok || !contract.IsParty(partyID) {
			continue
		}
		if contract.Status == model.ContractStatusInProgress && !job.IsPaid() {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (f *fakeStore) GetJobDetailForParty(ctx context.Context, jobID, partyID uuid.UUID) (*model.JobDetail, error) {
	return f.jobDetail(jobID, partyID)
}

func (f *fakeStore) InTx(_ context.Context, fn func(tx repository.Tx) error) error {
	profiles := copyMap(f.profiles)
	contracts := copyMap(f.contracts)
	jobs := copyMap(f.jobs)

	if err := fn(&fakeTx{store: f}); err != nil {
		f.profiles = profiles
		f.contracts = contracts
		f.jobs = jobs
		return err
	}
	return nil
}

func (f *fakeStore) jobDetail(jobID, partyID uuid.UUID) (*model.JobDetail, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	contract, ok := f.contracts[job.ContractID]
	if !ok || !contract.IsParty(partyID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.JobDetail{
		Job:        job,
		Contract:   contract,
		Client:     f.profiles[contract.ClientID],
		Contractor: f.profiles[contract.ContractorID],
	}, nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) JobDetailForUpdate(_ context.Context, jobID, partyID uuid.UUID) (*model.JobDetail, error) {
	return t.store.jobDetail(jobID, partyID)
}

func (t *fakeTx) ProfileForUpdate(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, ok := t.store.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (t *fakeTx) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	profile := t.store.profiles[id]
	profile.Balance = balance
	t.store.profiles[id] = profile
	return nil
}

func (t *fakeTx) MarkJobPaid(_ context.Context, jobID uuid.UUID, paymentDate time.Time) error {
	if t.store.markPaidErr != nil {
		return t.store.markPaidErr
	}
	job := t.store.jobs[jobID]
	paid := true
	job.Paid = &paid
	job.PaymentDate = &paymentDate
	t.store.jobs[jobID] = job
	return nil
}

func (t *fakeTx) OutstandingForClient(_ context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	if t.store.outstandingErr != nil {
		return decimal.Zero, t.store.outstandingErr
	}
	outstanding := decimal.Zero
	for _, job := range t.store.jobs {
		contract, ok := t.store.contracts[job.ContractID]
		if !ok || contract.ClientID != clientID {
			continue
		}
		if !job.IsPaid() {
			outstanding = outstanding.Add(job.Price)
		}
	}
	return outstanding, nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
