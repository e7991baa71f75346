package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"

	"ecopickup/internal/domain"
	"ecopickup/internal/logx"
)

// Config описывает адреса контрактов и настройки подтверждения для Client
type Config struct {
	PickupManager  common.Address
	GreenReward    common.Address
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Client читает и пишет контракты PickupManager и GreenReward.
// Каждая запись сначала читает, не выполнено ли уже нужное состояние.
type Client struct {
	backend     Backend
	signer      *Signer
	cfg         Config
	logger      logx.Logger
	submissions *prometheus.CounterVec
	closeFn     func()

	// сериализует выдачу nonce для общего аккаунта подписанта
	sendMu sync.Mutex
}

// NewClient конструктор, собирает Client поверх уже подключенного backend.
// submissions может быть nil.
func NewClient(backend Backend, signer *Signer, cfg Config, logger logx.Logger, submissions *prometheus.CounterVec) (*Client, error) {
	if backend == nil || signer == nil {
		return nil, errors.New("ledger: backend and signer are required")
	}
	if cfg.PickupManager == (common.Address{}) || cfg.GreenReward == (common.Address{}) {
		return nil, errors.New("ledger: contract addresses are required")
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 20 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{
		backend:     backend,
		signer:      signer,
		cfg:         cfg,
		logger:      logger,
		submissions: submissions,
	}, nil
}

// Close закрывает транспорт, если Client им владеет
func (c *Client) Close() {
	if c != nil && c.closeFn != nil {
		c.closeFn()
	}
}

// RoleOf читает роль addr
func (c *Client) RoleOf(ctx context.Context, addr common.Address) (Role, error) {
	out, err := c.call(ctx, c.cfg.PickupManager, &PickupManagerABI, methodUserRoles, addr)
	if err != nil {
		return RoleNone, err
	}
	role, ok := out[0].(uint8)
	if !ok {
		return RoleNone, failure(methodUserRoles, fmt.Errorf("unexpected output %T", out[0]))
	}
	return Role(role), nil
}

// PickupStatus читает on-chain двойник вывоза. Нулевой createdAt значит что его нет.
func (c *Client) PickupStatus(ctx context.Context, pickupID string) (OnChainPickup, error) {
	out, err := c.call(ctx, c.cfg.PickupManager, &PickupManagerABI, methodPickups, [32]byte(PickupKey(pickupID)))
	if err != nil {
		return OnChainPickup{}, err
	}
	if len(out) < 7 {
		return OnChainPickup{}, failure(methodPickups, fmt.Errorf("unexpected output length %d", len(out)))
	}
	status, ok1 := out[3].(uint8)
	createdAt, ok2 := out[6].(*big.Int)
	if !ok1 || !ok2 {
		return OnChainPickup{}, failure(methodPickups, fmt.Errorf("unexpected output types %T, %T", out[3], out[6]))
	}
	return OnChainPickup{Exists: createdAt.Sign() > 0, Status: Status(status)}, nil
}

// NonceOf читает nonce мета-транзакций для addr
func (c *Client) NonceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	out, err := c.call(ctx, c.cfg.PickupManager, &PickupManagerABI, methodNonces, addr)
	if err != nil {
		return nil, err
	}
	n, ok := out[0].(*big.Int)
	if !ok {
		return nil, failure(methodNonces, fmt.Errorf("unexpected output %T", out[0]))
	}
	return n, nil
}

// MaterialWeight читает множитель награды для материала
func (c *Client) MaterialWeight(ctx context.Context, material domain.Material) (uint8, error) {
	out, err := c.call(ctx, c.cfg.GreenReward, &GreenRewardABI, methodMaterialWeights, string(material))
	if err != nil {
		return 0, err
	}
	w, ok := out[0].(uint8)
	if !ok {
		return 0, failure(methodMaterialWeights, fmt.Errorf("unexpected output %T", out[0]))
	}
	return w, nil
}

// AssignRole выставляет роль addr, если она еще не такая
func (c *Client) AssignRole(ctx context.Context, addr common.Address, role Role) (Submission, error) {
	current, err := c.RoleOf(ctx, addr)
	if err != nil {
		return Submission{}, err
	}
	if current == role {
		return c.skipped(methodAssignRole), nil
	}
	return c.transact(ctx, c.cfg.PickupManager, &PickupManagerABI, methodAssignRole, addr, uint8(role))
}

// EnsurePickupExists создает on-chain двойник вывоза, если его еще нет
func (c *Client) EnsurePickupExists(ctx context.Context, p domain.Pickup) (Submission, error) {
	st, err := c.PickupStatus(ctx, p.ID)
	if err != nil {
		return Submission{}, err
	}
	if st.Exists {
		return c.skipped(methodCreatePickup), nil
	}
	return c.transact(ctx, c.cfg.PickupManager, &PickupManagerABI, methodCreatePickup,
		p.ID, string(p.Material), WeightUnits(p.WeightKg))
}

// AcceptPickup отправляет принятие, если леджер еще не в Assigned или Completed.
// С разрешением используется вариант с подписью курьера, courier это подписант.
func (c *Client) AcceptPickup(ctx context.Context, pickupID string, courier common.Address, approval *domain.CourierApproval) (Submission, error) {
	st, err := c.PickupStatus(ctx, pickupID)
	if err != nil {
		return Submission{}, err
	}
	if st.Exists && (st.Status == StatusAssigned || st.Status == StatusCompleted) {
		return c.skipped(methodAcceptPickup), nil
	}
	if approval == nil {
		return c.transact(ctx, c.cfg.PickupManager, &PickupManagerABI, methodAcceptPickup, pickupID)
	}
	v, r, s, err := splitSignature(approval.Signature)
	if err != nil {
		return Submission{}, err
	}
	return c.transact(ctx, c.cfg.PickupManager, &PickupManagerABI, methodAcceptPickupWithSig,
		pickupID, courier, approval.Deadline, v, r, s)
}

// CompletePickup отправляет завершение, если леджер еще не в Completed
func (c *Client) CompletePickup(ctx context.Context, pickupID string, courier common.Address, approval *domain.CourierApproval) (Submission, error) {
	st, err := c.PickupStatus(ctx, pickupID)
	if err != nil {
		return Submission{}, err
	}
	if st.Exists && st.Status == StatusCompleted {
		return c.skipped(methodCompletePickup), nil
	}
	if approval == nil {
		return c.transact(ctx, c.cfg.PickupManager, &PickupManagerABI, methodCompletePickup, pickupID)
	}
	v, r, s, err := splitSignature(approval.Signature)
	if err != nil {
		return Submission{}, err
	}
	return c.transact(ctx, c.cfg.PickupManager, &PickupManagerABI, methodCompletePickupWithSig,
		pickupID, courier, approval.Deadline, v, r, s)
}

// MintReward записывает активность пользователя. Сумма равна весу в
// сотых долях кг, умноженному на множитель материала из контракта.
func (c *Client) MintReward(ctx context.Context, user common.Address, material domain.Material, weightKg float64) (Mint, error) {
	multiplier, err := c.MaterialWeight(ctx, material)
	if err != nil {
		return Mint{}, err
	}
	weight := WeightUnits(weightKg)
	amount := new(big.Int).Mul(weight, big.NewInt(int64(multiplier)))

	sub, err := c.transact(ctx, c.cfg.GreenReward, &GreenRewardABI, methodRecordActivity, user, string(material), weight)
	if err != nil {
		return Mint{}, err
	}
	return Mint{Submission: sub, Amount: amount}, nil
}

func (c *Client) call(ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any) ([]any, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, failure(method, fmt.Errorf("pack: %w", err))
	}
	raw, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, failure(method, err)
	}
	out, err := contractABI.Unpack(method, raw)
	if err != nil {
		return nil, failure(method, fmt.Errorf("unpack: %w", err))
	}
	if len(out) == 0 {
		return nil, failure(method, errors.New("empty output"))
	}
	return out, nil
}

func (c *Client) transact(ctx context.Context, contract common.Address, contractABI *abi.ABI, method string, args ...any) (Submission, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		c.observe(method, "failed")
		return Submission{}, failure(method, fmt.Errorf("pack: %w", err))
	}

	tx, err := c.send(ctx, contract, data)
	if err != nil {
		// та же транзакция уже в пуле, считаем отправку состоявшейся
		if tx != nil && isDuplicateSubmission(err) {
			c.logger.Warn("ledger duplicate submission",
				logx.String("method", method),
				logx.String("tx", tx.Hash().Hex()),
				logx.Err(err),
			)
			c.observe(method, "duplicate")
			return Submission{Kind: SubmissionDuplicate, TxRef: tx.Hash().Hex()}, nil
		}
		c.observe(method, "failed")
		return Submission{}, failure(method, err)
	}

	// ждем receipt, таймаут дает pending, а не ошибку
	sub, err := c.waitMined(ctx, method, tx.Hash())
	if err != nil {
		c.observe(method, "failed")
		return Submission{}, err
	}
	c.observe(method, sub.Kind.String())
	return sub, nil
}

// send собирает, подписывает и отправляет legacy транзакцию. Возвращаемый tx
// не nil, если подпись прошла, даже когда отправка упала.
func (c *Client) send(ctx context.Context, contract common.Address, data []byte) (*types.Transaction, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	from := c.signer.Address()
	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("gas price: %w", err)
	}
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &contract, Data: data})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	// запас 20% на изменение состояния между оценкой и майнингом
	gas += gas / 5

	tx, err := c.signer.Sign(types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contract,
		Value:    new(big.Int),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	}))
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return tx, c.backend.SendTransaction(ctx, tx)
}

// waitMined опрашивает receipt до ConfirmTimeout. По таймауту возвращается
// pending, следующий вызов с чтением перед записью его догонит.
func (c *Client) waitMined(ctx context.Context, method string, hash common.Hash) (Submission, error) {
	waitCtx, cancel := context.WithTimeout(ctx, c.cfg.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(waitCtx, hash)
		switch {
		case err == nil && receipt != nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return Submission{}, &Error{Kind: KindReverted, Op: method, TxRef: hash.Hex()}
			}
			return Submission{Kind: SubmissionConfirmed, TxRef: hash.Hex()}, nil
		case err != nil && !errors.Is(err, ethereum.NotFound) && waitCtx.Err() == nil:
			c.logger.Debug("ledger receipt poll failed",
				logx.String("method", method),
				logx.String("tx", hash.Hex()),
				logx.Err(err),
			)
		}

		select {
		case <-waitCtx.Done():
			c.logger.Warn("ledger confirmation timed out",
				logx.String("method", method),
				logx.String("tx", hash.Hex()),
				logx.Duration("timeout", c.cfg.ConfirmTimeout),
			)
			return Submission{Kind: SubmissionPending, TxRef: hash.Hex()}, nil
		case <-ticker.C:
		}
	}
}

func (c *Client) skipped(method string) Submission {
	c.observe(method, SubmissionSkipped.String())
	return Submission{Kind: SubmissionSkipped}
}

func (c *Client) observe(method, outcome string) {
	if c.submissions != nil {
		c.submissions.WithLabelValues(method, outcome).Inc()
	}
}

// duplicateMarkers перечисляет ответы узла, означающие что та же самая
// транзакция уже лежит в пуле. "replacement transaction underpriced" и
// "nonce too low" сюда не входят: nonce занят другой транзакцией, наша
// в пул не попала, и вызов надо повторить как обычную ошибку.
var duplicateMarkers = []string{
	"already known",
	"known transaction",
}

// isDuplicateSubmission проверяет, что узел отклонил транзакцию из-за
// идентичной транзакции в пуле
func isDuplicateSubmission(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range duplicateMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
