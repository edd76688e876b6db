package cli

import (
	"github.com/spf13/cobra"

	"attack_game/contract"
	"attack_game/testkit"
)

const (
	showLogsF = "show-logs"
)

func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario and print every step",
		Long: `This command replays the steps of a scenario against a freshly deployed contest,
checks their expectations and prints the steps, the teams and the ledger counters.`,
		Args: cobra.ExactArgs(1),
		RunE: runScenario,
	}
	cmd.Flags().Bool(showLogsF, false, "Print the event log lines of every trigger")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := testkit.LoadScenario(args[0])
	if err != nil {
		return err
	}
	showLogs, err := cmd.Flags().GetBool(showLogsF)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, sc.Contract)
	if err != nil {
		return err
	}
	defer s.close()

	ledger, results, runErr := s.replay(sc)
	if ledger == nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	renderSteps(out, results)
	if showLogs {
		renderLogs(out, results)
	}
	contest, err := contract.ReadContest(s.store)
	if err != nil {
		return err
	}
	renderTeams(out, contest, sc.ContestConfig(s.cfg.Contest()))
	if err := renderMetrics(out, ledger.Metrics()); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	s.log.Infow("Scenario passed", "name", sc.Name, "steps", len(results))
	return nil
}
