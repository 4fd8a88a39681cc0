package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewPoliciesCommand creates the policies command group
func NewPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"policy"},
		Short:   "Manage access control policies",
		Long:    "List access control policies and manage their rules",
	}

	cmd.AddCommand(newPoliciesListCommand())
	cmd.AddCommand(newPoliciesRulesCommand())
	cmd.AddCommand(newPoliciesNormalizeLoggingCommand())

	return cmd
}

func newPoliciesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List access control policies",
		Long:  "List all access control policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			policies, err := client.AccessPolicies().ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list access policies: %w", err)
			}

			rendered, err := renderStructured(policies)
			if rendered || err != nil {
				return err
			}

			if len(policies) == 0 {
				fmt.Println("No access policies found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Default Action", "ID")

			for _, policy := range policies {
				defaultAction := ""
				if policy.DefaultAction != nil {
					defaultAction = policy.DefaultAction.Action
				}

				_ = table.Append(policy.Name, defaultAction, policy.ID)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newPoliciesRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules POLICY-NAME",
		Short: "List the rules of an access control policy",
		Long:  "List every rule of the named access control policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			policy, err := client.AccessPolicies().FindByName(ctx, args[0])
			if err != nil {
				return err
			}

			rules, err := client.AccessPolicies().ListAllRules(ctx, policy.ID)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}

			rendered, err := renderStructured(rules)
			if rendered || err != nil {
				return err
			}

			if len(rules) == 0 {
				fmt.Println("No rules found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Action", "Enabled", "Log Begin", "Log End", "Send Events")

			for _, rule := range rules {
				_ = table.Append(rule.Name, rule.Action,
					yesNo(rule.Enabled), yesNo(rule.LogBegin), yesNo(rule.LogEnd), yesNo(rule.SendEventsToFMC))
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newPoliciesNormalizeLoggingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-logging POLICY-NAME",
		Short: "Normalize rule logging across a policy",
		Long: `Normalize the logging settings of every rule in the named policy.

ALLOW rules log at connection end, BLOCK and TRUST rules log at connection
begin, and all rules send events to the management center.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defer client.Logout(ctx)

			policy, err := client.AccessPolicies().FindByName(ctx, args[0])
			if err != nil {
				return err
			}

			summary, err := client.AccessPolicies().NormalizeRuleLogging(ctx, policy.ID)
			if err != nil {
				return fmt.Errorf("failed to normalize rule logging: %w", err)
			}

			rendered, err := renderStructured(summary)
			if rendered || err != nil {
				return err
			}

			fmt.Printf("Examined %d rules: %d updated, %d already compliant, %d failed\n",
				summary.Total, summary.Updated, summary.Skipped, summary.Failed)

			for _, ruleID := range summary.FailedIDs {
				fmt.Printf("  failed: %s\n", ruleID)
			}

			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
