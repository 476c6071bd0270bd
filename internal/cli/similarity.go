package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datar-psa/goembed/similarity"
)

func newSimilarityCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <text-a> <text-b>",
		Short: "Print the cosine similarity of two texts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := newService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer done()

			result, err := similarity.Compare(cmd.Context(), svc, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "model:      %s\n", svc.Attributes().ModelID())
			fmt.Fprintf(cmd.OutOrStdout(), "dimensions: %d\n", result.Dimensions)
			fmt.Fprintf(cmd.OutOrStdout(), "cosine:     %.4f\n", result.Cosine)
			fmt.Fprintf(cmd.OutOrStdout(), "score:      %.4f\n", result.Score)
			return nil
		},
	}
}
