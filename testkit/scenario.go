package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"attack_game/contract"
	"attack_game/sdk"
	"attack_game/utils"
)

var ErrExpectation = errors.New("expectation failed")

// Scenario is a replayable contest session: accounts, fee schedule and an ordered
// list of steps with optional expectations.
type Scenario struct {
	Name            string             `yaml:"name" validate:"required"`
	Contract        string             `yaml:"contract" validate:"omitempty,ledger_address"`
	Start           time.Time          `yaml:"start"`
	ChallengePeriod time.Duration      `yaml:"challenge_period" validate:"gte=0"`
	MinTriggerValue uint64             `yaml:"min_trigger_value"`
	Fees            *FeeSchedule       `yaml:"fees"`
	Accounts        map[string]Account `yaml:"accounts" validate:"required,dive"`
	Steps           []Step             `yaml:"steps" validate:"required,dive"`
}

// Account is a funded wallet referenced by its alias in steps.
type Account struct {
	Address string `yaml:"address" validate:"required,ledger_address"`
	Base    uint64 `yaml:"base"`
}

// Step is one thing happening on the ledger.
type Step struct {
	Name   string         `yaml:"name"`
	Action string         `yaml:"action" validate:"required,oneof=trigger transfer timetravel"`
	From   string         `yaml:"from" validate:"required_unless=Action timetravel"`
	To     string         `yaml:"to" validate:"required_if=Action transfer"`
	Amount uint64         `yaml:"amount"`
	Asset  string         `yaml:"asset"`
	Shares uint64         `yaml:"shares"`
	Data   map[string]any `yaml:"data"`
	Shift  time.Duration  `yaml:"shift" validate:"required_if=Action timetravel"`
	Expect *Expect        `yaml:"expect"`
}

// Expect checks a trigger receipt. Save stores response vars under a name that
// later steps reference as $name.
type Expect struct {
	Bounced *bool             `yaml:"bounced"`
	Error   string            `yaml:"error"`
	Vars    map[string]string `yaml:"vars"`
	Payout  *uint64           `yaml:"payout"`
	Save    map[string]string `yaml:"save"`
}

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Index   int
	Step    Step
	Receipt *Receipt
}

// LoadScenario reads and validates a yaml scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	return ParseScenario(raw)
}

// ParseScenario decodes and validates a yaml scenario.
func ParseScenario(raw []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	s := &Scenario{}
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "decode scenario")
	}
	if err := utils.Validator().Struct(s); err != nil {
		return nil, errors.Wrap(err, "validate scenario")
	}
	if s.Contract == "" {
		s.Contract = "ATTACK_GAME"
	}
	if s.Start.IsZero() {
		s.Start = time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	}
	return s, nil
}

// ContestConfig returns base with the scenario's contest constants applied.
func (s *Scenario) ContestConfig(base contract.Config) contract.Config {
	cfg := base
	if s.ChallengePeriod > 0 {
		cfg.ChallengePeriod = s.ChallengePeriod
	}
	if s.MinTriggerValue > 0 {
		cfg.MinTriggerValue = s.MinTriggerValue
	}
	return cfg
}

// FeeSchedule returns the scenario fees, base when none are given.
func (s *Scenario) FeeSchedule(base FeeSchedule) FeeSchedule {
	if s.Fees == nil {
		return base
	}
	return *s.Fees
}

// Setup builds a funded ledger with the contest deployed on store. Scenario values
// take precedence over cfg and fees.
func (s *Scenario) Setup(store Store, cfg contract.Config, fees FeeSchedule, log utils.SimpleLogger) (*Ledger, error) {
	l := NewLedger(s.FeeSchedule(fees), s.Start, log)
	for _, alias := range s.aliases() {
		acc := s.Accounts[alias]
		l.Deposit(sdk.Address(acc.Address), sdk.AssetBase, acc.Base)
	}
	if err := l.Deploy(sdk.Address(s.Contract), store, s.ContestConfig(cfg)); err != nil {
		return nil, err
	}
	return l, nil
}

// Run replays every step against l. It stops at the first failed step or expectation.
func (s *Scenario) Run(l *Ledger) ([]StepResult, error) {
	r := &runner{s: s, l: l, vars: map[string]string{}}
	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		receipt, err := r.step(step)
		results = append(results, StepResult{Index: i, Step: step, Receipt: receipt})
		if err != nil {
			return results, errors.Wrapf(err, "step %d (%s)", i, stepLabel(step))
		}
	}
	return results, nil
}

func (s *Scenario) aliases() []string {
	out := make([]string, 0, len(s.Accounts))
	for alias := range s.Accounts {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

func stepLabel(step Step) string {
	if step.Name != "" {
		return step.Name
	}
	return step.Action
}

type runner struct {
	s    *Scenario
	l    *Ledger
	vars map[string]string
}

func (r *runner) step(step Step) (*Receipt, error) {
	switch step.Action {
	case "timetravel":
		r.l.TimeTravel(step.Shift)
		return nil, nil
	case "transfer":
		from, err := r.address(step.From)
		if err != nil {
			return nil, err
		}
		to, err := r.address(step.To)
		if err != nil {
			return nil, err
		}
		asset, err := r.asset(step.Asset)
		if err != nil {
			return nil, err
		}
		return nil, r.l.Transfer(from, to, asset, step.Amount)
	case "trigger":
		return r.trigger(step)
	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}
}

func (r *runner) trigger(step Step) (*Receipt, error) {
	from, err := r.address(step.From)
	if err != nil {
		return nil, err
	}
	to := sdk.Address(r.s.Contract)
	if step.To != "" {
		if to, err = r.address(step.To); err != nil {
			return nil, err
		}
	}
	outputs := map[sdk.Asset]uint64{}
	if step.Amount > 0 {
		outputs[sdk.AssetBase] = step.Amount
	}
	if step.Shares > 0 {
		asset, err := r.asset(step.Asset)
		if err != nil {
			return nil, err
		}
		outputs[asset] += step.Shares
	}
	data, err := r.data(step.Data)
	if err != nil {
		return nil, err
	}
	receipt, err := r.l.Trigger(from, to, outputs, data)
	if err != nil {
		return nil, err
	}
	if step.Expect != nil {
		if err := r.check(step.Expect, from, receipt); err != nil {
			return receipt, err
		}
	}
	return receipt, nil
}

func (r *runner) check(exp *Expect, from sdk.Address, receipt *Receipt) error {
	if exp.Bounced != nil && *exp.Bounced != receipt.Bounced() {
		return errors.Wrapf(ErrExpectation, "bounced=%t, error %q", receipt.Bounced(), receipt.Response.Error)
	}
	if exp.Error != "" && receipt.Response.Error != exp.Error {
		return errors.Wrapf(ErrExpectation, "error %q, want %q", receipt.Response.Error, exp.Error)
	}
	for key, want := range exp.Vars {
		want, err := r.expand(want)
		if err != nil {
			return err
		}
		if got := receipt.Var(key); got != want {
			return errors.Wrapf(ErrExpectation, "var %s=%q, want %q", key, got, want)
		}
	}
	if exp.Payout != nil {
		if got := receipt.PaidTo(from, sdk.AssetBase); got != *exp.Payout {
			return errors.Wrapf(ErrExpectation, "payout %d, want %d", got, *exp.Payout)
		}
	}
	for key, name := range exp.Save {
		r.vars[name] = receipt.Var(key)
	}
	return nil
}

// expand resolves $name references: saved response vars first, then account aliases.
func (r *runner) expand(val string) (string, error) {
	if !strings.HasPrefix(val, "$") {
		return val, nil
	}
	name := val[1:]
	if v, ok := r.vars[name]; ok {
		return v, nil
	}
	if acc, ok := r.s.Accounts[name]; ok {
		return acc.Address, nil
	}
	return "", fmt.Errorf("unknown reference %s", val)
}

func (r *runner) address(alias string) (sdk.Address, error) {
	if acc, ok := r.s.Accounts[alias]; ok {
		return sdk.Address(acc.Address), nil
	}
	v, err := r.expand(alias)
	if err != nil {
		return "", err
	}
	return sdk.Address(v), nil
}

func (r *runner) asset(name string) (sdk.Asset, error) {
	if name == "" {
		return sdk.AssetBase, nil
	}
	v, err := r.expand(name)
	if err != nil {
		return "", err
	}
	return sdk.Asset(v), nil
}

// data renders the trigger payload, expanding string references on the way.
func (r *runner) data(in map[string]any) (string, error) {
	if len(in) == 0 {
		return "", nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			expanded, err := r.expand(s)
			if err != nil {
				return "", err
			}
			out[k] = expanded
			continue
		}
		out[k] = v
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "encode trigger data")
	}
	return string(raw), nil
}

// FormatAmount prints a base amount with thousands separators for tables.
func FormatAmount(v uint64) string {
	s := strconv.FormatUint(v, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
