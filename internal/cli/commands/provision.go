package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gtp/internal/config"
	"gtp/internal/fixtures"
)

// ProvisionCommand handles the provision command
type ProvisionCommand struct {
	config    *config.Config
	dbManager *fixtures.DatabaseManager
	out       io.Writer
}

// NewProvisionCommand creates a new ProvisionCommand
func NewProvisionCommand(cfg *config.Config, dbManager *fixtures.DatabaseManager, out io.Writer) *ProvisionCommand {
	return &ProvisionCommand{
		config:    cfg,
		dbManager: dbManager,
		out:       out,
	}
}

// Execute runs the command
func (pc *ProvisionCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), fixtures.ConnectTimeout)
	defer cancel()

	created, err := pc.dbManager.CheckAndCreateDatabase(ctx)
	if err != nil {
		return fmt.Errorf("provision failed: %w", err)
	}

	name := pc.config.GetDatabaseName()
	if created {
		fmt.Fprintln(pc.out, color.GreenString("✓ Created database %s", name))
	} else {
		fmt.Fprintln(pc.out, color.CyanString("Database %s already exists", name))
	}
	return nil
}
