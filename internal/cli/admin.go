package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/admin"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Protected administrative settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "ramadan <on|off>",
		Short:     "Force Ramadan mode on or off",
		Long:      "Switch the manual Ramadan override. The access code is read from the terminal\nwithout echo; set $RAMADAN_PRO_ADMIN_CODE to change it.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE:      runAdminRamadan,
	})

	return cmd
}

func runAdminRamadan(cmd *cobra.Command, args []string) error {
	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
	default:
		return fmt.Errorf("invalid value %q: must be on or off", args[0])
	}

	gate, err := admin.NewGate(env.AdminCode)
	if err != nil {
		return err
	}

	code, err := admin.ReadCode(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := gate.Check(code); err != nil {
		return err
	}

	loadedSettings.SetRamadanOverride(on)
	if err := saveSettings(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ramadan mode override is %s\n", args[0])
	return nil
}
