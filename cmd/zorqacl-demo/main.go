// Command zorqacl-demo loads a scenario file and answers ad-hoc queries
// against it, exercising the zorqacl library end to end the way arborist's
// cmd wires server.go -- except this one prints an answer and exits rather
// than opening a socket.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mg28/zorqacl/scenario"
	"github.com/mg28/zorqacl/zorqacl"
)

var scenarioPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zorqacl-demo",
		Short: "Query an access control list loaded from a scenario file",
	}
	root.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "path to a scenario YAML file")
	_ = root.MarkPersistentFlagRequired("scenario")

	root.AddCommand(newCheckCmd(), newLineageCmd())
	return root
}

func loadScenario() (*zorqacl.Acl, error) {
	file, err := os.Open(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("could not open scenario: %w", err)
	}
	defer file.Close()

	loaded, err := scenario.Load(file)
	if err != nil {
		return nil, err
	}

	acl := zorqacl.New(zorqacl.WithLogger(zorqacl.NewLogHandler(log.New(os.Stderr, "", log.LstdFlags))))
	if err := loaded.Apply(acl); err != nil {
		return nil, fmt.Errorf("could not apply scenario: %w", err)
	}
	return acl, nil
}

func optionalFlag(value string) zorqacl.OptionalString {
	if value == "" {
		return zorqacl.Wildcard()
	}
	return zorqacl.Name(value)
}

func newCheckCmd() *cobra.Command {
	var role, resource, privilege string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve a single (role, resource, privilege) query",
		RunE: func(cmd *cobra.Command, args []string) error {
			acl, err := loadScenario()
			if err != nil {
				return err
			}
			decision := acl.GetRule(optionalFlag(role), optionalFlag(resource), optionalFlag(privilege))
			cmd.Println(decision)
			if decision != zorqacl.Allow {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role name, omit for wildcard")
	cmd.Flags().StringVar(&resource, "resource", "", "resource name, omit for wildcard")
	cmd.Flags().StringVar(&privilege, "privilege", "", "privilege name, omit for wildcard")
	return cmd
}

func newLineageCmd() *cobra.Command {
	var role, resource string
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Print the lineage of a role or a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (role == "") == (resource == "") {
				return fmt.Errorf("exactly one of --role or --resource must be set")
			}
			acl, err := loadScenario()
			if err != nil {
				return err
			}
			var lineage []string
			if role != "" {
				lineage = acl.GetRoleLineage(role)
			} else {
				lineage = acl.GetResourceLineage(resource)
			}
			cmd.Println(strings.Join(lineage, " -> "))
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role name")
	cmd.Flags().StringVar(&resource, "resource", "", "resource name")
	return cmd
}
