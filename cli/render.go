package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"attack_game/contract"
	"attack_game/testkit"
)

func renderSteps(w io.Writer, results []testkit.StepResult) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Step", "Action", "From", "Result", "Vars", "Fees"})
	for _, r := range results {
		result, vars, fees := "-", "", ""
		if rc := r.Receipt; rc != nil {
			result = "ok"
			if rc.Bounced() {
				result = "bounced: " + rc.Response.Error
			}
			vars = joinVars(rc.Response.ResponseVars)
			fees = testkit.FormatAmount(rc.Fees)
		}
		table.Append([]string{fmt.Sprintf("%d", r.Index), r.Step.Name, r.Step.Action, r.Step.From, result, vars, fees})
	}
	table.Render()
}

func renderLogs(w io.Writer, results []testkit.StepResult) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Unit", "Log"})
	for _, r := range results {
		if r.Receipt == nil {
			continue
		}
		for _, line := range r.Receipt.Logs {
			table.Append([]string{fmt.Sprintf("%d", r.Index), shortID(r.Receipt.Unit), line})
		}
	}
	table.Render()
}

func renderTeams(w io.Writer, c *contract.Contest, cfg contract.Config) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Team", "Asset", "Founder Tax", "Shares", "Founder Shares", "Leader"})
	for _, id := range c.Order {
		t := c.Teams[id]
		leader := ""
		if c.Winner != nil && *c.Winner == id {
			leader = "*"
		}
		table.Append([]string{
			string(id),
			shortID(string(t.Asset)),
			t.FounderTax.RatString(),
			testkit.FormatAmount(t.TotalShares),
			testkit.FormatAmount(t.FounderShares),
			leader,
		})
	}

	status := "open"
	pool := "-"
	if c.Finished {
		status = "finished"
		pool = testkit.FormatAmount(*c.FinalPool)
	} else if ends := c.ChallengeEndsAt(cfg); ends > 0 {
		status = "open until " + time.Unix(ends, 0).UTC().Format(time.RFC3339)
	}
	table.SetFooter([]string{fmt.Sprintf("%d teams", len(c.Order)), "", "", "", status, pool})
	table.Render()
}

func renderState(w io.Writer, store testkit.Store) {
	keys := store.Keys()
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		if v := store.Get(k); v != nil {
			rows = append(rows, []string{k, *v})
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Value"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(rows))})
	table.Render()
}

func renderMetrics(w io.Writer, m *testkit.Metrics) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Counter", "Labels", "Value"})
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			value := metric.GetCounter().GetValue()
			table.Append([]string{mf.GetName(), strings.Join(labels, ","), testkit.FormatAmount(uint64(value))})
		}
	}
	table.Render()
	return nil
}

func joinVars(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+shortID(vars[k]))
	}
	return strings.Join(parts, " ")
}

// shortID trims unit and asset hashes for table output, addresses fit as they are.
func shortID(id string) string {
	if len(id) <= 20 {
		return id
	}
	return id[:12] + ".."
}
