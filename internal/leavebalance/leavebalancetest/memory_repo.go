// Package leavebalancetest provides an in-memory balance repository for tests
// of code that sits on top of the ledger.
package leavebalancetest

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"go-hris-leave/internal/leavebalance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MemoryRepository applies every statement atomically under one mutex, which
// gives the same outcome as a row lock for single-row updates.
type MemoryRepository struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*leavebalance.LeaveBalance
	keys map[leavebalance.BalanceKey]uuid.UUID

	Inserts int
	Debits  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rows: make(map[uuid.UUID]*leavebalance.LeaveBalance),
		keys: make(map[leavebalance.BalanceKey]uuid.UUID),
	}
}

func (m *MemoryRepository) WithTx(*sql.Tx) leavebalance.Repository { return m }

// Seed stores b as is, bypassing InsertIfAbsent.
func (m *MemoryRepository) Seed(b leavebalance.LeaveBalance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := b
	m.rows[b.ID] = &cp
	m.keys[b.Key()] = b.ID
}

// Get returns a copy of the row with id.
func (m *MemoryRepository) Get(id uuid.UUID) (leavebalance.LeaveBalance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return leavebalance.LeaveBalance{}, false
	}
	return *b, true
}

// Count returns the number of rows stored for key.
func (m *MemoryRepository) Count(key leavebalance.BalanceKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[key]; ok {
		return 1
	}
	return 0
}

func (m *MemoryRepository) InsertIfAbsent(_ context.Context, b *leavebalance.LeaveBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[b.Key()]; ok {
		return nil
	}
	now := time.Now().UTC()
	cp := *b
	cp.CreatedAt, cp.UpdatedAt = now, now
	m.rows[cp.ID] = &cp
	m.keys[cp.Key()] = cp.ID
	m.Inserts++
	return nil
}

func (m *MemoryRepository) FindByKey(_ context.Context, key leavebalance.BalanceKey, _ bool) (*leavebalance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keys[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.rows[id]
	return &cp, nil
}

func (m *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*leavebalance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MemoryRepository) FindByEmployeeYear(_ context.Context, employeeID uuid.UUID, year int) ([]leavebalance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leavebalance.LeaveBalance
	for _, b := range m.rows {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) DebitIfAvailable(_ context.Context, id uuid.UUID, days decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || b.RemainingDays.LessThan(days) {
		return false, nil
	}
	b.UsedDays = b.UsedDays.Add(days)
	b.RemainingDays = b.RemainingDays.Sub(days)
	b.Version++
	b.UpdatedAt = time.Now().UTC()
	m.Debits++
	return true, nil
}

func (m *MemoryRepository) CreditIfUsed(_ context.Context, id uuid.UUID, days decimal.Decimal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok || b.UsedDays.LessThan(days) {
		return false, nil
	}
	b.UsedDays = b.UsedDays.Sub(days)
	b.RemainingDays = b.RemainingDays.Add(days)
	b.Version++
	b.UpdatedAt = time.Now().UTC()
	return true, nil
}
