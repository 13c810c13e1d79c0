package main

import (
	"fmt"

	"github.com/danmuck/pandalink/internal/protocol/session"
	"github.com/danmuck/pandalink/internal/tools"
	"github.com/spf13/cobra"
)

func newForwardCmd() *cobra.Command {
	f := tools.Forward{
		ADB:      "adb",
		Local:    session.DefaultTCPAddress,
		Abstract: session.DefaultAbstractName,
	}
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Forward a local TCP port to the service socket with adb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Run(cmd.Context(), tools.ExecRunner{}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forwarding %s -> localabstract:%s\n", f.Local, f.Abstract)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.ADB, "adb", f.ADB, "adb binary")
	cmd.Flags().StringVarP(&f.Serial, "serial", "s", "", "device serial")
	cmd.Flags().StringVar(&f.Local, "local", f.Local, "local host:port")
	cmd.Flags().StringVar(&f.Abstract, "socket", f.Abstract, "service socket name")
	return cmd
}
