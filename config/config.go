package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"attack_game/contract"
	"attack_game/testkit"
	"attack_game/utils"
)

// Flag and key names, shared by cobra flags, viper keys and the yaml file.
const (
	LogLevelF        = "log-level"
	ColourF          = "colour"
	DBPathF          = "db-path"
	StateFileF       = "state-file"
	ChallengePeriodF = "challenge-period"
	MinTriggerValueF = "min-trigger-value"
	BounceFeeF       = "bounce-fee"
	DefineFeeF       = "define-fee"
	PaymentFeeF      = "payment-fee"
)

// Config drives the contest simulator. Scenario files may override the contest
// constants and fees; everything else comes from here.
type Config struct {
	LogLevel        utils.LogLevel `mapstructure:"log-level" yaml:"log-level"`
	Colour          bool           `mapstructure:"colour" yaml:"colour"`
	DBPath          string         `mapstructure:"db-path" yaml:"db-path"`
	StateFile       string         `mapstructure:"state-file" yaml:"state-file" validate:"excluded_with=DBPath"`
	ChallengePeriod time.Duration  `mapstructure:"challenge-period" yaml:"challenge-period" validate:"gt=0"`
	MinTriggerValue uint64         `mapstructure:"min-trigger-value" yaml:"min-trigger-value" validate:"gt=0"`
	BounceFee       uint64         `mapstructure:"bounce-fee" yaml:"bounce-fee"`
	DefineFee       uint64         `mapstructure:"define-fee" yaml:"define-fee"`
	PaymentFee      uint64         `mapstructure:"payment-fee" yaml:"payment-fee"`
}

// Default returns the reference deployment values.
func Default() *Config {
	fees := testkit.DefaultFees()
	cc := contract.DefaultConfig()
	return &Config{
		LogLevel:        utils.INFO,
		Colour:          true,
		ChallengePeriod: cc.ChallengePeriod,
		MinTriggerValue: cc.MinTriggerValue,
		BounceFee:       fees.BounceFee,
		DefineFee:       fees.DefineFee,
		PaymentFee:      fees.PaymentFee,
	}
}

// RegisterFlags adds every config key as a flag, defaults taken from Default.
func RegisterFlags(flags *pflag.FlagSet) {
	def := Default()
	level := def.LogLevel
	flags.Var(&level, LogLevelF, "Options: debug, info, warn, error.")
	flags.Bool(ColourF, def.Colour, "Use `--colour=false` for plain log output.")
	flags.String(DBPathF, def.DBPath, "bbolt file for contract state, in-memory when empty.")
	flags.String(StateFileF, def.StateFile, "JSON snapshot of contract state, loaded before and saved after a command. Not with --db-path.")
	flags.Duration(ChallengePeriodF, def.ChallengePeriod, "How long a leader must hold the lead before finish.")
	flags.Uint64(MinTriggerValueF, def.MinTriggerValue, "Least native value a create_team trigger must carry.")
	flags.Uint64(BounceFeeF, def.BounceFee, "Native value the ledger keeps from a bounced trigger.")
	flags.Uint64(DefineFeeF, def.DefineFee, "Fee per asset a response defines.")
	flags.Uint64(PaymentFeeF, def.PaymentFee, "Fee per response carrying payments.")
}

// Load reads the optional yaml file at path, applies flags on top and validates.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault(LogLevelF, def.LogLevel.String())
	v.SetDefault(ColourF, def.Colour)
	v.SetDefault(ChallengePeriodF, def.ChallengePeriod)
	v.SetDefault(MinTriggerValueF, def.MinTriggerValue)
	v.SetDefault(BounceFeeF, def.BounceFee)
	v.SetDefault(DefineFeeF, def.DefineFee)
	v.SetDefault(PaymentFeeF, def.PaymentFee)

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	cfg := new(Config)
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs the struct tags and the cross-field rules.
func (c *Config) Validate() error {
	if err := utils.Validator().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MinTriggerValue < c.DefineFee {
		return ErrMinTriggerBelowFee
	}
	if c.BounceFee < c.PaymentFee {
		return ErrBounceFeeTooLow
	}
	return nil
}

// Contest returns the contract constants.
func (c *Config) Contest() contract.Config {
	return contract.Config{ChallengePeriod: c.ChallengePeriod, MinTriggerValue: c.MinTriggerValue}
}

// Fees returns the ledger fee schedule.
func (c *Config) Fees() testkit.FeeSchedule {
	return testkit.FeeSchedule{BounceFee: c.BounceFee, DefineFee: c.DefineFee, PaymentFee: c.PaymentFee}
}
