package ledger

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"ecopickup/internal/logx"
)

var (
	testManager = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	testReward  = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

type fakePickup struct {
	id       string
	material string
	status   uint8
	weight   *big.Int
}

type sentCall struct {
	method string
	args   []any
	hash   common.Hash
}

// fakeChain emulates the two contracts behind the Backend interface.
type fakeChain struct {
	mu          sync.Mutex
	roles       map[common.Address]uint8
	pickups     map[common.Hash]*fakePickup
	multipliers map[string]uint8
	nonce       uint64
	sent        []sentCall

	callErrs       []error
	calls          int
	sendErr        error
	receiptMissing bool
	revert         bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		roles:       map[common.Address]uint8{},
		pickups:     map[common.Hash]*fakePickup{},
		multipliers: map[string]uint8{"plastic": 1, "metal": 3},
	}
}

func lookupMethod(data []byte) (*abi.Method, error) {
	if len(data) < 4 {
		return nil, errors.New("short calldata")
	}
	if m, err := PickupManagerABI.MethodById(data[:4]); err == nil {
		return m, nil
	}
	return GreenRewardABI.MethodById(data[:4])
}

func (f *fakeChain) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.callErrs) > 0 {
		err := f.callErrs[0]
		f.callErrs = f.callErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	m, err := lookupMethod(call.Data)
	if err != nil {
		return nil, err
	}
	args, err := m.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}
	zero := new(big.Int)
	switch m.Name {
	case methodUserRoles:
		return m.Outputs.Pack(f.roles[args[0].(common.Address)])
	case methodNonces:
		return m.Outputs.Pack(big.NewInt(7))
	case methodMaterialWeights:
		return m.Outputs.Pack(f.multipliers[args[0].(string)])
	case methodPickups:
		key := common.Hash(args[0].([32]byte))
		p, ok := f.pickups[key]
		if !ok {
			return m.Outputs.Pack("", common.Address{}, common.Address{}, uint8(0), "", zero, zero, zero, zero)
		}
		return m.Outputs.Pack(p.id, common.Address{}, common.Address{}, p.status, p.material, p.weight, big.NewInt(1), zero, zero)
	}
	return nil, errors.New("unexpected call " + m.Name)
}

func (f *fakeChain) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonce, nil
}

func (f *fakeChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeChain) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 50_000, nil
}

func (f *fakeChain) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(1337), nil
}

func (f *fakeChain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	m, err := lookupMethod(tx.Data())
	if err != nil {
		return err
	}
	args, err := m.Inputs.Unpack(tx.Data()[4:])
	if err != nil {
		return err
	}
	f.nonce++
	f.sent = append(f.sent, sentCall{method: m.Name, args: args, hash: tx.Hash()})

	switch m.Name {
	case methodAssignRole:
		f.roles[args[0].(common.Address)] = args[1].(uint8)
	case methodCreatePickup:
		id := args[0].(string)
		f.pickups[PickupKey(id)] = &fakePickup{id: id, material: args[1].(string), weight: args[2].(*big.Int)}
	case methodAcceptPickup, methodAcceptPickupWithSig:
		f.pickups[PickupKey(args[0].(string))].status = uint8(StatusAssigned)
	case methodCompletePickup, methodCompletePickupWithSig:
		f.pickups[PickupKey(args[0].(string))].status = uint8(StatusCompleted)
	}
	return nil
}

func (f *fakeChain) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.receiptMissing {
		return nil, ethereum.NotFound
	}
	if f.revert {
		return &types.Receipt{Status: types.ReceiptStatusFailed}, nil
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeChain) sentMethods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, s := range f.sent {
		out = append(out, s.method)
	}
	return out
}

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s, err := NewSigner("0x"+hex.EncodeToString(crypto.FromECDSA(key)), big.NewInt(1337))
	require.NoError(t, err)
	return s
}

func newTestClient(t *testing.T, chain Backend) (*Client, *prometheus.CounterVec) {
	t.Helper()
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_ledger_submissions_total"}, []string{"action", "outcome"})
	c, err := NewClient(chain, newTestSigner(t), Config{
		PickupManager:  testManager,
		GreenReward:    testReward,
		ConfirmTimeout: 50 * time.Millisecond,
		PollInterval:   5 * time.Millisecond,
	}, logx.Nop(), vec)
	require.NoError(t, err)
	return c, vec
}

func callMsgFor(t *testing.T) ethereum.CallMsg {
	t.Helper()
	data, err := PickupManagerABI.Pack(methodUserRoles, userAddr)
	require.NoError(t, err)
	to := testManager
	return ethereum.CallMsg{To: &to, Data: data}
}
