package journal

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/tradejournal/internal/id"
	"github.com/rustyeddy/tradejournal/trade"
)

// Memory is an in-memory Journal. FindAll returns trades in the order
// they were first saved.
type Memory struct {
	mu sync.RWMutex

	trades map[string]trade.Trade
	order  []string

	accounts   []Account
	strategies []string
	runs       []ImportRun
	notes      []Note
}

func NewMemory() *Memory {
	return &Memory{trades: make(map[string]trade.Trade)}
}

func (m *Memory) FindAll() ([]trade.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]trade.Trade, 0, len(m.order))
	for _, ticket := range m.order {
		out = append(out, m.trades[ticket])
	}
	return out, nil
}

func (m *Memory) FindByTicket(ticket string) (trade.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trades[ticket]
	if !ok {
		return trade.Trade{}, fmt.Errorf("trade %q: %w", ticket, ErrNotFound)
	}
	return t, nil
}

func (m *Memory) Save(t trade.Trade) error {
	if err := validTicket(t); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(t)
	return nil
}

// SaveAll validates every trade before writing any.
func (m *Memory) SaveAll(trades []trade.Trade) error {
	for _, t := range trades {
		if err := validTicket(t); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range trades {
		m.put(t)
	}
	return nil
}

func (m *Memory) put(t trade.Trade) {
	if _, ok := m.trades[t.Ticket]; !ok {
		m.order = append(m.order, t.Ticket)
	}
	m.trades[t.Ticket] = t
}

func (m *Memory) Delete(ticket string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trades[ticket]; !ok {
		return false, nil
	}
	delete(m.trades, ticket)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == ticket })
	return true, nil
}

func (m *Memory) DeleteAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trades = make(map[string]trade.Trade)
	m.order = nil
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Accounts() ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := slices.Clone(m.accounts)
	sortAccounts(out)
	return out, nil
}

func (m *Memory) FindAccount(name string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.accountIndex(name); i >= 0 {
		return m.accounts[i], nil
	}
	return Account{}, fmt.Errorf("account %q: %w", name, ErrNotFound)
}

func (m *Memory) SaveAccount(a Account) error {
	name, err := validName("account", a.Name)
	if err != nil {
		return err
	}
	a.Name = name

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.accountIndex(name); i >= 0 {
		m.accounts[i] = a
		return nil
	}
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *Memory) DeleteAccount(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.accountIndex(name)
	if i < 0 {
		return false, nil
	}
	m.accounts = slices.Delete(m.accounts, i, i+1)
	return true, nil
}

func (m *Memory) RenameAccount(oldName, newName string) error {
	newName, err := validName("account", newName)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.accountIndex(oldName)
	if i < 0 {
		return fmt.Errorf("account %q: %w", oldName, ErrNotFound)
	}
	if j := m.accountIndex(newName); j >= 0 && j != i {
		return fmt.Errorf("%w: account %q already exists", ErrInvalidInput, newName)
	}
	m.accounts[i].Name = newName

	for ticket, t := range m.trades {
		if strings.EqualFold(t.Account, oldName) {
			m.trades[ticket] = t.WithAccount(newName)
		}
	}
	return nil
}

func (m *Memory) accountIndex(name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(m.accounts, func(a Account) bool {
		return strings.EqualFold(a.Name, name)
	})
}

func (m *Memory) Strategies() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := slices.Clone(m.strategies)
	slices.Sort(out)
	return out, nil
}

func (m *Memory) AddStrategy(name string) error {
	name, err := validName("strategy", name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(m.strategies, name) {
		m.strategies = append(m.strategies, name)
	}
	return nil
}

func (m *Memory) DeleteStrategy(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.strategies, name)
	if i < 0 {
		return false, nil
	}
	m.strategies = slices.Delete(m.strategies, i, i+1)
	return true, nil
}

func (m *Memory) RenameStrategy(oldName, newName string) error {
	newName, err := validName("strategy", newName)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.strategies, oldName)
	if i < 0 {
		return fmt.Errorf("strategy %q: %w", oldName, ErrNotFound)
	}
	if newName != oldName && slices.Contains(m.strategies, newName) {
		return fmt.Errorf("%w: strategy %q already exists", ErrInvalidInput, newName)
	}
	m.strategies[i] = newName

	for ticket, t := range m.trades {
		if t.Strategy == oldName {
			m.trades[ticket] = t.WithStrategy(newName)
		}
	}
	return nil
}

func (m *Memory) RecordImport(run ImportRun) error {
	run = stampRun(run)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *Memory) ImportRuns() ([]ImportRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.runs), nil
}

func stampRun(run ImportRun) ImportRun {
	if run.ID == "" {
		run.ID = id.New()
	}
	if run.Created.IsZero() {
		run.Created = time.Now()
	}
	return run
}
