package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"ecopickup/internal/apperr"
	"ecopickup/internal/domain"
	"ecopickup/internal/ledger"
	"ecopickup/internal/ports/pickuptx"
)

// memStore is an in-memory store and wallet directory with all-or-nothing transactions.
type memStore struct {
	mu       sync.Mutex
	pickups  map[string]domain.Pickup
	dropoffs map[string]domain.RecyclingLocation
	carbon   map[string]domain.CarbonReport
	points   map[string]int
	wallets  map[string]string
	couriers map[string]domain.CourierContext

	// beforeTx runs inside WithTx before fn, with the lock released.
	beforeTx   func()
	failCommit error
	commits    int
}

func newMemStore() *memStore {
	return &memStore{
		pickups:  map[string]domain.Pickup{},
		dropoffs: map[string]domain.RecyclingLocation{},
		carbon:   map[string]domain.CarbonReport{},
		points:   map[string]int{},
		wallets:  map[string]string{},
		couriers: map[string]domain.CourierContext{},
	}
}

func (m *memStore) addPickup(p domain.Pickup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickups[p.ID] = p
}

func (m *memStore) pickup(id string) domain.Pickup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pickups[id]
}

func (m *memStore) Get(_ context.Context, id string) (*domain.Pickup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pickups[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) UserWallet(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wallets[userID], nil
}

func (m *memStore) Courier(_ context.Context, courierID string) (*domain.CourierContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.couriers[courierID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStore) WithTx(ctx context.Context, fn func(tx pickuptx.Repository) error) error {
	if m.beforeTx != nil {
		m.beforeTx()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		pickups:  maps.Clone(m.pickups),
		dropoffs: maps.Clone(m.dropoffs),
		carbon:   maps.Clone(m.carbon),
		points:   maps.Clone(m.points),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if m.failCommit != nil {
		return m.failCommit
	}
	m.pickups, m.dropoffs, m.carbon, m.points = tx.pickups, tx.dropoffs, tx.carbon, tx.points
	m.commits++
	return nil
}

type memTx struct {
	pickups  map[string]domain.Pickup
	dropoffs map[string]domain.RecyclingLocation
	carbon   map[string]domain.CarbonReport
	points   map[string]int
}

func (t *memTx) Get(_ context.Context, id string) (*domain.Pickup, error) {
	p, ok := t.pickups[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memTx) ApplyTransition(_ context.Context, tr domain.Transition) error {
	if err := tr.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	p, ok := t.pickups[tr.PickupID]
	if !ok || p.Status != tr.From {
		return apperr.ErrConflict
	}
	p.Status = tr.To
	if tr.CourierID != nil {
		id := *tr.CourierID
		p.CourierID = &id
	}
	if tr.DropoffID != nil {
		loc := t.dropoffs[*tr.DropoffID]
		p.Dropoff = &loc
	}
	t.pickups[p.ID] = p
	return nil
}

func (t *memTx) UpsertDropoff(_ context.Context, loc domain.RecyclingLocation) error {
	t.dropoffs[loc.ID] = loc
	return nil
}

func (t *memTx) UpsertCarbonReport(_ context.Context, r domain.CarbonReport) error {
	t.carbon[r.PickupID] = r
	return nil
}

func (t *memTx) CreditPoints(_ context.Context, userID string, points int) error {
	t.points[userID] += points
	return nil
}

// fakeLedger mimics the read-before-write behaviour of the ledger client over an in-memory chain.
type fakeLedger struct {
	mu      sync.Mutex
	roles   map[common.Address]ledger.Role
	pickups map[string]ledger.Status
	calls   []string
	sent    []string
	failOn  map[string]error
	// outcomes overrides the confirmed result per method. A submission that
	// is not confirmed leaves the chain state untouched, like a tx still in the pool.
	outcomes map[string]ledger.SubmissionKind
	// hidden makes created pickups invisible to PickupStatus.
	hidden bool

	acceptedBy  common.Address
	completedBy common.Address
	approvals   []*domain.CourierApproval
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		roles:    map[common.Address]ledger.Role{},
		pickups:  map[string]ledger.Status{},
		failOn:   map[string]error{},
		outcomes: map[string]ledger.SubmissionKind{},
	}
}

func (f *fakeLedger) record(method string) error {
	f.calls = append(f.calls, method)
	if err := f.failOn[method]; err != nil {
		return &ledger.Error{Kind: ledger.KindFailure, Op: method, Err: err}
	}
	return nil
}

func (f *fakeLedger) submit(method string, apply func()) ledger.Submission {
	f.sent = append(f.sent, method)
	kind, ok := f.outcomes[method]
	if !ok {
		kind = ledger.SubmissionConfirmed
	}
	if kind == ledger.SubmissionConfirmed && apply != nil {
		apply()
	}
	return ledger.Submission{Kind: kind, TxRef: fmt.Sprintf("0x%s-%d", method, len(f.sent))}
}

func (f *fakeLedger) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLedger) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func (f *fakeLedger) PickupStatus(_ context.Context, pickupID string) (ledger.OnChainPickup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("PickupStatus"); err != nil {
		return ledger.OnChainPickup{}, err
	}
	st, ok := f.pickups[pickupID]
	if !ok || f.hidden {
		return ledger.OnChainPickup{}, nil
	}
	return ledger.OnChainPickup{Exists: true, Status: st}, nil
}

func (f *fakeLedger) AssignRole(_ context.Context, addr common.Address, role ledger.Role) (ledger.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AssignRole"); err != nil {
		return ledger.Submission{}, err
	}
	if f.roles[addr] == role {
		return ledger.Submission{}, nil
	}
	return f.submit("AssignRole", func() { f.roles[addr] = role }), nil
}

func (f *fakeLedger) EnsurePickupExists(_ context.Context, p domain.Pickup) (ledger.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("EnsurePickupExists"); err != nil {
		return ledger.Submission{}, err
	}
	if _, ok := f.pickups[p.ID]; ok && !f.hidden {
		return ledger.Submission{}, nil
	}
	return f.submit("EnsurePickupExists", func() { f.pickups[p.ID] = ledger.StatusPending }), nil
}

func (f *fakeLedger) AcceptPickup(_ context.Context, pickupID string, courier common.Address, approval *domain.CourierApproval) (ledger.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AcceptPickup"); err != nil {
		return ledger.Submission{}, err
	}
	st := f.pickups[pickupID]
	if st == ledger.StatusAssigned || st == ledger.StatusCompleted {
		return ledger.Submission{}, nil
	}
	f.approvals = append(f.approvals, approval)
	return f.submit("AcceptPickup", func() {
		f.pickups[pickupID] = ledger.StatusAssigned
		f.acceptedBy = courier
	}), nil
}

func (f *fakeLedger) CompletePickup(_ context.Context, pickupID string, courier common.Address, approval *domain.CourierApproval) (ledger.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CompletePickup"); err != nil {
		return ledger.Submission{}, err
	}
	if f.pickups[pickupID] == ledger.StatusCompleted {
		return ledger.Submission{}, nil
	}
	f.approvals = append(f.approvals, approval)
	return f.submit("CompletePickup", func() {
		f.pickups[pickupID] = ledger.StatusCompleted
		f.completedBy = courier
	}), nil
}

func (f *fakeLedger) MintReward(_ context.Context, _ common.Address, _ domain.Material, weightKg float64) (ledger.Mint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("MintReward"); err != nil {
		return ledger.Mint{}, err
	}
	amount := new(big.Int).Mul(ledger.WeightUnits(weightKg), big.NewInt(10))
	return ledger.Mint{Submission: f.submit("MintReward", nil), Amount: amount}, nil
}

func (f *fakeLedger) NonceOf(_ context.Context, _ common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("NonceOf"); err != nil {
		return nil, err
	}
	return big.NewInt(int64(len(f.approvals))), nil
}

var errRPC = errors.New("rpc unavailable")
