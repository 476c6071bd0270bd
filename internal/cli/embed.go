package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type embedLine struct {
	Index     int       `json:"index"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

func newEmbedCmd(flags *globalFlags) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "embed [text...]",
		Short: "Print one JSON line per input text with its embedding",
		Example: `  goembed embed "hello" "world"
  cat lines.txt | goembed embed --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := args
			if fromStdin {
				lines, err := readLines(cmd)
				if err != nil {
					return err
				}
				data = append(data, lines...)
			}
			if len(data) == 0 {
				return fmt.Errorf("no input text: pass arguments or --stdin")
			}

			svc, done, err := newService(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer done()

			embeddings, err := svc.GenerateEmbeddings(cmd.Context(), data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for i, e := range embeddings {
				if err := enc.Encode(embedLine{Index: i, Text: data[i], Embedding: e}); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "also read one text per line from stdin")
	return cmd
}

// maxLineSize bounds a single stdin line
const maxLineSize = 1 << 20

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
