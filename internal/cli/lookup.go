package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd(newService ServiceFunc) *cobra.Command {
	var (
		csv bool
		dir string
	)

	cmd := &cobra.Command{
		Use:   "lookup IP",
		Short: "Show location, organization, ASN and reverse DNS of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := newService()
			if err != nil {
				return err
			}
			defer release()

			rec, err := svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), rec)

			if csv {
				path, err := exportRecord(dir, rec)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), success.Sprint("CSV exported to "+path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&csv, "csv", false, "also write <ip>_info.csv")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory for the CSV export")
	return cmd
}

func newCompareCmd(newService ServiceFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "compare IP IP",
		Short: "Show two addresses side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := newService()
			if err != nil {
				return err
			}
			defer release()

			cmp, err := svc.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), cmp.A, cmp.B)
			return nil
		},
	}
}
