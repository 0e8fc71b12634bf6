package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miguelrios/2025-compiled/internal/output"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Show the rule-based persona for the year",
	Long: `Persona classifies the year on four axes (language, time, style and
workflow), promotes one of them to the headline persona and prints the
combined roast and compliment. The LLM judge is not called.`,
	RunE: runPersona,
}

func init() {
	rootCmd.AddCommand(personaCmd)
}

// personaOutput is the JSON shape of the persona command.
type personaOutput struct {
	Axes   persona.Deterministic `json:"axes"`
	Result persona.Result        `json:"result"`
	Named  persona.Definition    `json:"named"`
}

func runPersona(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	_, _, a, err := s.load(cmd.Context(), flagGlobal)
	if err != nil {
		return err
	}

	axes := persona.Classify(a.Metrics, a.Patterns, a.Timeline)
	result := persona.Fallback(axes)
	named := persona.Lookup(result.Persona)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(personaOutput{Axes: axes, Result: result, Named: named})
	}

	fmt.Println(output.Section("Persona"))
	fmt.Printf(" %s %s\n", named.Emoji, output.StyleAccent.Render(named.Name))
	fmt.Printf(" %s\n", output.StyleMuted.Render(named.Tagline))

	fmt.Println(output.Section("Axes"))
	for _, row := range []struct {
		label string
		axis  persona.Axis
	}{
		{"Language", axes.Language},
		{"Time", axes.Time},
		{"Style", axes.Style},
		{"Workflow", axes.Workflow},
	} {
		fmt.Println(output.Stat(row.label, fmt.Sprintf("%s %s", row.axis.Emoji, row.axis.Name)))
	}

	fmt.Println(output.Section("Verdict"))
	fmt.Printf(" %s %s\n", output.StyleBold.Render("Roast:"), result.Roast)
	fmt.Printf(" %s %s\n\n", output.StyleBold.Render("Compliment:"), result.Compliment)
	return nil
}
