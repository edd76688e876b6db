package testkit

import (
	"encoding/base64"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/crypto/blake2b"

	"attack_game/contract"
	"attack_game/sdk"
	"attack_game/utils"
)

var (
	ErrUnknownContract     = errors.New("unknown contract")
	ErrContractExists      = errors.New("contract already deployed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEmptyTrigger        = errors.New("trigger carries no value")
	ErrBelowBounceFee      = errors.New("native value below the bounce fee")
)

// SettlementFailedCode marks responses the ledger bounced because the contract
// could not cover its payments.
const SettlementFailedCode = "settlement_failed"

// FeeSchedule is the flat fee model of the simulated ledger. All fees are paid by
// the contract out of its native balance.
type FeeSchedule struct {
	// BounceFee is kept from the native value of a bounced trigger.
	BounceFee uint64 `mapstructure:"bounce_fee" yaml:"bounce_fee"`
	// DefineFee is charged per asset a response defines.
	DefineFee uint64 `mapstructure:"define_fee" yaml:"define_fee"`
	// PaymentFee is charged once per response that carries payments, refunds included.
	PaymentFee uint64 `mapstructure:"payment_fee" yaml:"payment_fee"`
}

// DefaultFees is the schedule the CLI falls back to.
func DefaultFees() FeeSchedule {
	return FeeSchedule{BounceFee: 10000, DefineFee: 5000, PaymentFee: 2156}
}

// Receipt is what the ledger reports back for one delivered trigger.
type Receipt struct {
	Unit      string
	Timestamp int64
	Response  *contract.Response
	Logs      []string
	Refunds   []contract.Payment
	Fees      uint64
}

// Bounced reports whether the contract rejected the trigger.
func (r *Receipt) Bounced() bool { return r.Response.Bounced }

// Var returns a response variable, empty when unset.
func (r *Receipt) Var(key string) string { return r.Response.ResponseVars[key] }

// PaidTo sums the payments of asset to one address, refunds included.
func (r *Receipt) PaidTo(addr sdk.Address, asset sdk.Asset) uint64 {
	var sum uint64
	for _, p := range append(append([]contract.Payment(nil), r.Response.Payments...), r.Refunds...) {
		if p.Address == addr && p.Asset == asset {
			sum += p.Amount
		}
	}
	return sum
}

// deployment is a contract instance: its store and the constants it runs with.
// A fresh contract.Contract is bound per trigger so host calls see that trigger only.
type deployment struct {
	id    sdk.Address
	store Store
	cfg   contract.Config
}

// Ledger is an in-memory stand-in for the replicated ledger: it keeps balances,
// delivers triggers one at a time, settles payments, refunds bounces and charges
// the flat fees.
type Ledger struct {
	mu        deadlock.Mutex
	log       utils.SimpleLogger
	fees      FeeSchedule
	metrics   *Metrics
	now       int64
	seq       uint64
	balances  map[sdk.Address]map[sdk.Asset]uint64
	definers  map[sdk.Asset]sdk.Address
	contracts map[sdk.Address]*deployment
}

// NewLedger creates an empty ledger whose clock starts at start.
func NewLedger(fees FeeSchedule, start time.Time, log utils.SimpleLogger) *Ledger {
	if log == nil {
		log = utils.NewNopLogger()
	}
	return &Ledger{
		log:       log,
		fees:      fees,
		metrics:   NewMetrics(),
		now:       start.Unix(),
		balances:  map[sdk.Address]map[sdk.Asset]uint64{},
		definers:  map[sdk.Asset]sdk.Address{},
		contracts: map[sdk.Address]*deployment{},
	}
}

func (l *Ledger) Metrics() *Metrics { return l.metrics }

func (l *Ledger) Fees() FeeSchedule { return l.fees }

// Now is the ledger clock in unix seconds.
func (l *Ledger) Now() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// SetTime moves the clock to an absolute timestamp.
func (l *Ledger) SetTime(ts int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = ts
}

// TimeTravel shifts the clock forward.
func (l *Ledger) TimeTravel(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now += int64(d / time.Second)
}

// Deposit credits an address out of thin air, the way a genesis payment would.
func (l *Ledger) Deposit(addr sdk.Address, asset sdk.Asset, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(addr, asset, amount)
}

// Balance returns the balance of addr in asset.
func (l *Ledger) Balance(addr sdk.Address, asset sdk.Asset) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr][asset]
}

// Transfer moves value between two plain addresses without triggering anything.
func (l *Ledger) Transfer(from, to sdk.Address, asset sdk.Asset, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.debit(from, asset, amount); err != nil {
		return err
	}
	l.credit(to, asset, amount)
	return nil
}

// Deploy registers a contest under id on top of store.
func (l *Ledger) Deploy(id sdk.Address, store Store, cfg contract.Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.contracts[id]; ok {
		return errors.Wrapf(ErrContractExists, "deploy %s", id)
	}
	l.contracts[id] = &deployment{id: id, store: store, cfg: cfg}
	l.log.Infow("Contract deployed", "id", id, "challengePeriod", cfg.ChallengePeriod, "minTriggerValue", cfg.MinTriggerValue)
	return nil
}

// Trigger pays outputs from sender to the contract and runs it with data attached.
func (l *Ledger) Trigger(from, to sdk.Address, outputs map[sdk.Asset]uint64, data string) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dep, ok := l.contracts[to]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownContract, "trigger %s", to)
	}
	assets := sortedAssets(outputs)
	if len(assets) == 0 {
		return nil, errors.Wrapf(ErrEmptyTrigger, "trigger %s from %s", to, from)
	}
	for _, asset := range assets {
		if have := l.balances[from][asset]; have < outputs[asset] {
			return nil, errors.Wrapf(ErrInsufficientBalance, "%s holds %d %s, needs %d", from, have, asset, outputs[asset])
		}
	}
	// the bounce fee is the least a trigger has to carry, it pays for a possible refund
	if native := outputs[sdk.AssetBase]; native < l.fees.BounceFee {
		return nil, errors.Wrapf(ErrBelowBounceFee, "trigger %s from %s carries %d, needs %d", to, from, native, l.fees.BounceFee)
	}

	l.seq++
	unit := l.unitID(from, to)
	attached := make(map[sdk.Asset]uint64, len(assets))
	for _, asset := range assets {
		_ = l.debit(from, asset, outputs[asset])
		l.credit(to, asset, outputs[asset])
		attached[asset] = outputs[asset]
	}

	call := &hostCall{ledger: l, contractID: to, unit: unit}
	pending := newPendingState(dep.store)
	resp := contract.New(pending, call, dep.cfg).Execute(&sdk.Env{
		ContractId:  to,
		TxId:        unit,
		BlockHeight: l.seq,
		Timestamp:   strconv.FormatInt(l.now, 10),
		Sender:      sdk.Sender{Address: from},
		Outputs:     attached,
		Data:        data,
	})
	if !resp.Bounced {
		var payable []contract.Payment
		for _, p := range resp.Payments {
			if !slices.Contains(call.defined, p.Asset) {
				payable = append(payable, p)
			}
		}
		if err := l.coverable(to, payable, false); err != nil {
			l.log.Warnw("Response cannot be settled", "unit", unit, "err", err)
			resp = &contract.Response{
				Bounced:      true,
				Error:        err.Error(),
				ErrorCode:    SettlementFailedCode,
				ResponseVars: map[string]string{},
			}
			call.defined = nil
			call.logs = nil
		}
	}
	if !resp.Bounced {
		pending.flush()
	}
	if bs, ok := dep.store.(*BoltState); ok {
		if err := bs.Err(); err != nil {
			return nil, errors.Wrapf(err, "trigger %s", unit)
		}
	}

	receipt := &Receipt{Unit: unit, Timestamp: l.now, Response: resp, Logs: call.logs}
	l.metrics.Triggers().Inc()

	if resp.Bounced {
		l.metrics.Bounces(resp.ErrorCode).Inc()
		receipt.Refunds = l.refunds(from, attached)
		if err := l.settle(to, receipt.Refunds, "refund"); err != nil {
			return nil, err
		}
		if len(receipt.Refunds) > 0 {
			receipt.Fees += l.fees.PaymentFee
		}
		l.log.Infow("Trigger bounced", "unit", unit, "from", from, "error", resp.Error)
	} else {
		for _, asset := range call.defined {
			l.definers[asset] = to
			l.metrics.AssetsDefined().Inc()
			receipt.Fees += l.fees.DefineFee
		}
		if err := l.settle(to, resp.Payments, ""); err != nil {
			return nil, err
		}
		if len(resp.Payments) > 0 {
			receipt.Fees += l.fees.PaymentFee
		}
		l.log.Infow("Trigger applied", "unit", unit, "from", from, "vars", resp.ResponseVars)
	}
	receipt.Fees = l.chargeFee(to, receipt.Fees)
	return receipt, nil
}

// StateVar reads one raw state variable of a contract.
func (l *Ledger) StateVar(contractID sdk.Address, key string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dep, ok := l.contracts[contractID]
	if !ok {
		return "", false, errors.Wrapf(ErrUnknownContract, "state %s", contractID)
	}
	v := dep.store.Get(key)
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// StateVars dumps every state variable of a contract.
func (l *Ledger) StateVars(contractID sdk.Address) (map[string]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dep, ok := l.contracts[contractID]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownContract, "state %s", contractID)
	}
	out := map[string]string{}
	for _, k := range dep.store.Keys() {
		if v := dep.store.Get(k); v != nil {
			out[k] = *v
		}
	}
	return out, nil
}

// Contest decodes the contest record of a deployed contract.
func (l *Ledger) Contest(contractID sdk.Address) (*contract.Contest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dep, ok := l.contracts[contractID]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownContract, "contest %s", contractID)
	}
	return contract.ReadContest(dep.store)
}

// -----------------------------------------------------------------------------
// Settlement
// -----------------------------------------------------------------------------

// refunds returns foreign assets in full and native value minus the bounce fee.
func (l *Ledger) refunds(to sdk.Address, attached map[sdk.Asset]uint64) []contract.Payment {
	var out []contract.Payment
	if native := attached[sdk.AssetBase]; native > l.fees.BounceFee {
		out = append(out, contract.Payment{Address: to, Asset: sdk.AssetBase, Amount: native - l.fees.BounceFee})
	}
	for _, asset := range sortedAssets(attached) {
		if asset.IsBase() {
			continue
		}
		out = append(out, contract.Payment{Address: to, Asset: asset, Amount: attached[asset]})
	}
	return out
}

// settle executes payments from a contract. Assets the contract defined are minted,
// anything else has to be covered by the contract's balance. Refunds always give
// back what the trigger brought in, they never mint.
func (l *Ledger) settle(from sdk.Address, payments []contract.Payment, kind string) error {
	refund := kind == "refund"
	if err := l.coverable(from, payments, refund); err != nil {
		return err
	}
	for _, p := range payments {
		label := kind
		switch {
		case refund:
		case p.Asset.IsBase():
			label = "native"
		default:
			label = "asset"
		}
		if !l.mints(from, p, refund) {
			_ = l.debit(from, p.Asset, p.Amount)
		}
		l.credit(p.Address, p.Asset, p.Amount)
		l.metrics.Payments(label).Add(float64(p.Amount))
	}
	return nil
}

// coverable checks that the contract holds everything it pays that it cannot mint.
func (l *Ledger) coverable(from sdk.Address, payments []contract.Payment, refund bool) error {
	need := map[sdk.Asset]uint64{}
	for _, p := range payments {
		if !l.mints(from, p, refund) {
			need[p.Asset] += p.Amount
		}
	}
	for _, asset := range sortedAssets(need) {
		if have := l.balances[from][asset]; have < need[asset] {
			return errors.Wrapf(ErrInsufficientBalance, "contract %s holds %d %s, pays %d", from, have, asset, need[asset])
		}
	}
	return nil
}

func (l *Ledger) mints(from sdk.Address, p contract.Payment, refund bool) bool {
	return !refund && l.definers[p.Asset] == from
}

// chargeFee takes the fee out of the contract's native balance, never below zero.
func (l *Ledger) chargeFee(contractID sdk.Address, fee uint64) uint64 {
	if have := l.balances[contractID][sdk.AssetBase]; have < fee {
		l.log.Warnw("Contract cannot cover fee", "contract", contractID, "fee", fee, "balance", have)
		fee = have
	}
	if fee > 0 {
		_ = l.debit(contractID, sdk.AssetBase, fee)
		l.metrics.Fees().Add(float64(fee))
	}
	return fee
}

func (l *Ledger) credit(addr sdk.Address, asset sdk.Asset, amount uint64) {
	if amount == 0 {
		return
	}
	if l.balances[addr] == nil {
		l.balances[addr] = map[sdk.Asset]uint64{}
	}
	l.balances[addr][asset] += amount
}

func (l *Ledger) debit(addr sdk.Address, asset sdk.Asset, amount uint64) error {
	have := l.balances[addr][asset]
	if have < amount {
		return errors.Wrapf(ErrInsufficientBalance, "%s holds %d %s, needs %d", addr, have, asset, amount)
	}
	if amount > 0 {
		l.balances[addr][asset] = have - amount
	}
	return nil
}

// unitID derives a base64 unit hash the way the reference network names its units.
func (l *Ledger) unitID(from, to sdk.Address) string {
	return hashID(fmt.Sprintf("%d|%s|%s|%d", l.seq, from, to, l.now))
}

func hashID(seed string) string {
	sum := blake2b.Sum256([]byte(seed))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func sortedAssets(m map[sdk.Asset]uint64) []sdk.Asset {
	out := make([]sdk.Asset, 0, len(m))
	for asset, amount := range m {
		if amount > 0 {
			out = append(out, asset)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// -----------------------------------------------------------------------------
// Host Calls
// -----------------------------------------------------------------------------

// hostCall is the contract's view of the ledger during a single trigger. Asset
// definitions are staged here and only registered if the trigger is accepted.
// The ledger lock is already held while the contract runs.
type hostCall struct {
	ledger     *Ledger
	contractID sdk.Address
	unit       string
	logs       []string
	defined    []sdk.Asset
}

var _ contract.SDKInterface = (*hostCall)(nil)

func (h *hostCall) Log(msg string) {
	h.logs = append(h.logs, msg)
	h.ledger.log.Debugw("Contract log", "contract", h.contractID, "unit", h.unit, "line", msg)
}

func (h *hostCall) DefineAsset(definition string) (sdk.Asset, error) {
	if h.unit == "" {
		return "", errors.New("asset definition outside of a trigger")
	}
	asset := sdk.Asset(hashID(fmt.Sprintf("%s#%d", h.unit, len(h.defined))))
	h.defined = append(h.defined, asset)
	return asset, nil
}

func (h *hostCall) Balance(asset sdk.Asset) uint64 {
	return h.ledger.balances[h.contractID][asset]
}
