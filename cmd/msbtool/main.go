package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Grimrukh/msb-go/msb"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "msbtool",
		Short: "Inspect and round-trip MapStudio Binary (MSB) map files.",
	}

	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newRoundtripCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "msbtool:", err)
		os.Exit(1)
	}
}

func readMSB(path string) (*msb.MSB, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	m, err := msb.Read(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return m, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.msb>",
		Short: "Print the entry count of each Param.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMSB(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Models:  %d (%s)\n", len(m.Models.Entries), m.Models.Name)
			fmt.Printf("Events:  %d (%s)\n", len(m.Events.Entries), m.Events.Name)
			fmt.Printf("Regions: %d (%s)\n", len(m.Regions.Entries), m.Regions.Name)
			fmt.Printf("Routes:  %d (%s)\n", len(m.Routes.Entries), m.Routes.Name)
			fmt.Printf("Layers:  %d (%s)\n", len(m.Layers.Entries), m.Layers.Name)
			fmt.Printf("Parts:   %d (%s)\n", len(m.Parts.Entries), m.Parts.Name)
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "dump <file.msb>",
		Short: "Print every entry name in the given Param (default: parts).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMSB(args[0])
			if err != nil {
				return err
			}
			switch kind {
			case "models":
				for _, e := range m.Models.Entries {
					fmt.Printf("%-40s kind=%d\n", e.Name, e.Kind)
				}
			case "events":
				for _, e := range m.Events.Entries {
					fmt.Printf("%-40s kind=%d\n", e.Name, e.Kind)
				}
			case "regions":
				for _, e := range m.Regions.Entries {
					fmt.Printf("%-40s kind=%d entity=%d\n", e.Name, e.Kind, e.EntityID)
				}
			case "routes":
				for _, e := range m.Routes.Entries {
					fmt.Printf("%-40s kind=%d\n", e.Name, e.Kind)
				}
			case "parts":
				for _, e := range m.Parts.Entries {
					fmt.Printf("%-40s kind=%d entity=%d\n", e.Name, e.Kind, e.EntityID)
				}
			default:
				return errors.Errorf("unknown param %q (want models, events, regions, routes, parts)", kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "param", "parts", "which Param to dump (models, events, regions, routes, parts)")
	return cmd
}

func newRoundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <file.msb> <out.msb>",
		Short: "Read an MSB file, re-serialize it to a second file, and print the number of bytes written.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMSB(args[0])
			if err != nil {
				return err
			}
			buf, err := m.Write()
			if err != nil {
				return errors.Wrap(err, "re-serializing")
			}
			if err := os.WriteFile(args[1], buf, 0o644); err != nil {
				return errors.Wrapf(err, "writing %s", args[1])
			}
			fmt.Printf("wrote %d bytes to %s\n", len(buf), args[1])
			return nil
		},
	}
}
