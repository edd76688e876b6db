package cli

import (
	"github.com/spf13/cobra"

	"attack_game/contract"
	"attack_game/testkit"
)

func StateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state [scenario.yaml]",
		Short: "Dump the raw state variables of a contest",
		Long: `This command prints every state variable of a contest. With a scenario it replays
the scenario first; without one it reads what an earlier run left in --db-path
or --state-file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: dumpState,
	}
	cmd.Flags().String(contractF, defaultContract, contractUsage)
	return cmd
}

func dumpState(cmd *cobra.Command, args []string) error {
	contractID, err := cmd.Flags().GetString(contractF)
	if err != nil {
		return err
	}
	var sc *testkit.Scenario
	if len(args) == 1 {
		if sc, err = testkit.LoadScenario(args[0]); err != nil {
			return err
		}
		contractID = sc.Contract
	}

	s, err := openSession(cmd, contractID)
	if err != nil {
		return err
	}
	defer s.close()

	switch {
	case sc != nil:
		if _, _, err := s.replay(sc); err != nil {
			s.log.Warnw("Scenario stopped early", "err", err)
		}
	case !s.persisted():
		return ErrNoState
	}

	out := cmd.OutOrStdout()
	renderState(out, s.store)
	contest, err := contract.ReadContest(s.store)
	if err != nil {
		return err
	}
	cfg := s.cfg.Contest()
	if sc != nil {
		cfg = sc.ContestConfig(cfg)
	}
	renderTeams(out, contest, cfg)
	return nil
}
