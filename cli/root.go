package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"attack_game/config"
	"attack_game/contract"
	"attack_game/testkit"
	"attack_game/utils"
)

const (
	configF   = "config"
	contractF = "contract"

	configUsage   = "YAML file holding any of the flags below, flags win over the file."
	contractUsage = "Contract id to read when no scenario is given."

	defaultContract = "ATTACK_GAME"
)

var ErrNoState = errors.New("nothing to show: pass a scenario, --db-path or --state-file")

// NewCmd returns the contestsim root command.
func NewCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "contestsim",
		Short: "Replay attack game contests on a simulated ledger",
		Long: `contestsim deploys the attack game contract on an in-process ledger,
replays yaml scenarios against it and prints what happened.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String(configF, "", configUsage)
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(RunCmd(), StateCmd())
	return root
}

// session bundles what every subcommand needs: config, logger and contract storage.
type session struct {
	cfg      *config.Config
	log      *utils.ZapLogger
	store    testkit.Store
	db       *testkit.BoltDB
	snapshot *contract.MockState // set when the state lives in a json file
}

// persisted reports whether the contract state outlives the command.
func (s *session) persisted() bool { return s.db != nil || s.snapshot != nil }

func openSession(cmd *cobra.Command, contractID string) (*session, error) {
	path, err := cmd.Flags().GetString(configF)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := utils.NewZapLogger(cfg.LogLevel, cfg.Colour)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	s := &session{cfg: cfg, log: log}
	if cfg.DBPath == "" {
		st := contract.NewMockState()
		if cfg.StateFile != "" {
			if err := st.LoadFromFile(cfg.StateFile); err != nil {
				return nil, fmt.Errorf("load state file: %w", err)
			}
			s.snapshot = st
			log.Debugw("Using state file", "path", cfg.StateFile)
		}
		s.store = st
		return s, nil
	}
	db, err := testkit.OpenBoltDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	st, err := db.State(contractID)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.db, s.store = db, st
	log.Debugw("Using bolt state", "path", cfg.DBPath, "contract", contractID)
	return s, nil
}

func (s *session) close() {
	if s.snapshot != nil {
		if err := s.snapshot.SaveToFile(s.cfg.StateFile); err != nil {
			s.log.Warnw("Saving state file failed", "path", s.cfg.StateFile, "err", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warnw("Closing database failed", "err", err)
		}
	}
	_ = s.log.Sync()
}

// replay deploys the scenario on top of the session store and runs it.
// The results of every executed step are returned even when a step fails.
func (s *session) replay(sc *testkit.Scenario) (*testkit.Ledger, []testkit.StepResult, error) {
	ledger, err := sc.Setup(s.store, s.cfg.Contest(), s.cfg.Fees(), s.log)
	if err != nil {
		return nil, nil, err
	}
	results, err := sc.Run(ledger)
	return ledger, results, err
}
