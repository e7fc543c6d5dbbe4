package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"yashubustudio/answerfinder/finder"
)

var askOpts struct {
	best bool
	json bool
}

var askCmd = &cobra.Command{
	Use:   "ask TEXT...",
	Short: "Print the answers matching a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer rt.close()

		text := queryFromArgs(args)
		out := cmd.OutOrStdout()
		if askOpts.best {
			variant, ok := rt.service.FindBestMatch(text)
			return renderBest(out, variant, ok, askOpts.json)
		}
		answer := rt.service.GetAnswer(text)
		if askOpts.json {
			return writeJSON(out, answer)
		}
		renderAnswer(out, answer)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askOpts.best, "best", false, "Print only the best match")
	askCmd.Flags().BoolVar(&askOpts.json, "json", false, "Print the result as JSON")
}

const noAnswer = "no answer found"

// queryFromArgs joins the arguments and flattens line breaks and runs of
// whitespace, as for text captured from a page.
func queryFromArgs(args []string) string {
	return finder.CleanText(strings.Join(args, " "))
}

// renderAnswer prints a numbered list of variants, or a notice when there are none.
func renderAnswer(w io.Writer, answer finder.Answer) {
	if len(answer.Answer) == 0 {
		fmt.Fprintln(w, pterm.FgRed.Sprint(noAnswer))
		return
	}
	for i, variant := range answer.Answer {
		fmt.Fprintln(w, pterm.FgGray.Sprintf("%d. %s", i+1, variant))
	}
}

func renderBest(w io.Writer, variant string, found, asJSON bool) error {
	if asJSON {
		return writeJSON(w, map[string]interface{}{"found": found, "variant": variant})
	}
	if !found {
		fmt.Fprintln(w, pterm.FgRed.Sprint(noAnswer))
		return nil
	}
	fmt.Fprintln(w, variant)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
