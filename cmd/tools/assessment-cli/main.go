// cmd/tools/assessment-cli/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"salesfit-assessment/internal/common/validation"
	"salesfit-assessment/internal/models"
	calculatesde "salesfit-assessment/internal/workers/assessment/calculate-sde"
	composeprompt "salesfit-assessment/internal/workers/assessment/compose-prompt"
	normalizechecklist "salesfit-assessment/internal/workers/assessment/normalize-checklist"
	"salesfit-assessment/pkg/registry"
)

func main() {
	renderCmd := flag.NewFlagSet("render", flag.ExitOnError)
	sdeCmd := flag.NewFlagSet("sde", flag.ExitOnError)
	taxonomyCmd := flag.NewFlagSet("taxonomy", flag.ExitOnError)
	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)

	// Render command flags
	renderIn := renderCmd.String("in", "", "Path to a questionnaire submission JSON file (- for stdin)")

	// SDE command flags
	sdeFields := map[string]*string{}
	for _, name := range []string{
		calculatesde.FieldNetProfit,
		calculatesde.FieldOwnerSalary,
		calculatesde.FieldPersonalExpenses,
		calculatesde.FieldUnusualExpenses,
		calculatesde.FieldInterest,
		calculatesde.FieldDepreciation,
	} {
		sdeFields[name] = sdeCmd.String(name, "", "Raw form value for "+name)
	}

	// Taxonomy command flags
	taxonomyOut := taxonomyCmd.String("out", "", "Write the indicator registry to this file instead of stdout")

	// Verify command flags
	verifyPath := verifyCmd.String("path", "configs/indicator-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		renderCmd.Parse(os.Args[2:])
		if *renderIn == "" {
			fmt.Println("Error: -in is required for render.")
			renderCmd.Usage()
			os.Exit(1)
		}
		prompt, err := renderFile(*renderIn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering prompt: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(prompt)

	case "sde":
		sdeCmd.Parse(os.Args[2:])
		raw := make(map[string]string, len(sdeFields))
		for name, v := range sdeFields {
			raw[name] = *v
		}
		fmt.Println(formatSde(calculatesde.Calculate(calculatesde.FromStrings(raw))))

	case "taxonomy":
		taxonomyCmd.Parse(os.Args[2:])
		reg := builtinRegistry(time.Now())
		if *taxonomyOut == "" {
			data, _ := json.MarshalIndent(reg, "", "  ")
			fmt.Println(string(data))
			return
		}
		if err := registry.SaveRegistry(reg, *taxonomyOut); err != nil {
			fmt.Printf("Error exporting taxonomy: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d indicators to %s\n", reg.IndicatorCount(), *taxonomyOut)

	case "verify":
		verifyCmd.Parse(os.Args[2:])
		diffs, err := verifyRegistry(*verifyPath)
		if err != nil {
			fmt.Printf("Registry verification failed: %v\n", err)
			os.Exit(1)
		}
		if len(diffs) > 0 {
			fmt.Printf("Registry %s has drifted from taxonomy %s:\n", *verifyPath, normalizechecklist.TaxonomyVersion)
			for _, d := range diffs {
				fmt.Println("  - " + d)
			}
			os.Exit(1)
		}
		fmt.Println("Registry verification passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

// renderFile runs a stored submission through validation, normalization,
// calculation and composition without contacting the LLM service.
func renderFile(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read submission: %w", err)
	}
	return render(data)
}

func render(data []byte) (string, error) {
	result, err := validation.ValidateDocument(data, normalizechecklist.RequestSchema())
	if err != nil {
		return "", err
	}
	if !result.Valid {
		return "", fmt.Errorf("invalid submission: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	var sub models.QuestionnaireSubmission
	if err := json.Unmarshal(data, &sub); err != nil {
		return "", fmt.Errorf("decode submission: %w", err)
	}
	if err := sub.BasicInfo.Validate(); err != nil {
		return "", err
	}

	checklist, err := normalizechecklist.Normalize(sub.AssessmentChecklist)
	if err != nil {
		return "", err
	}
	sde := calculatesde.Calculate(sub.SdeCalculation)
	return composeprompt.Compose(sub.BasicInfo, sde, checklist)
}

func formatSde(r models.SdeResult) string {
	var sb strings.Builder
	rows := []struct {
		label string
		value float64
	}{
		{"Net Profit (pre-tax)", r.NetProfit},
		{"Owner Compensation", r.OwnerSalary},
		{"Personal Expenses", r.PersonalExpenses},
		{"One-Time/Unusual Expenses", r.UnusualExpenses},
		{"Interest Expense", r.Interest},
		{"Depreciation & Amortization", r.Depreciation},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-28s %s\n", row.label+":", composeprompt.FormatMoney(row.value))
	}
	fmt.Fprintf(&sb, "%-28s %s", "Total SDE:", composeprompt.FormatMoney(r.Total()))
	return sb.String()
}

func builtinRegistry(now time.Time) *registry.IndicatorRegistry {
	reg := &registry.IndicatorRegistry{
		Version:         normalizechecklist.TaxonomyVersion,
		ComposerVersion: composeprompt.ComposerVersion,
		LastUpdated:     now.UTC().Format(time.RFC3339),
	}
	for _, g := range normalizechecklist.Groups() {
		group := registry.Group{Key: g.Key, Heading: g.Heading}
		for _, ind := range g.Indicators {
			group.Indicators = append(group.Indicators, registry.Indicator{Key: ind.Key, Label: ind.Label})
		}
		reg.Groups = append(reg.Groups, group)
	}
	return reg
}

func verifyRegistry(path string) ([]string, error) {
	stored, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	if err := stored.Validate(); err != nil {
		return nil, err
	}
	return registry.Diff(builtinRegistry(time.Now()), stored), nil
}

func help() {
	fmt.Print(`
Usage: assessment-cli <command> [flags]

Commands:
  render    Print the analysis prompt for a stored questionnaire submission
  sde       Calculate Seller's Discretionary Earnings from raw form values
  taxonomy  Export the readiness indicator registry
  verify    Compare a stored indicator registry with the built-in taxonomy
  help      Show this help message

Examples:
  assessment-cli render -in submission.json
  assessment-cli sde -netProfit 50000 -ownerSalary 35000 -interest 500
  assessment-cli taxonomy -out configs/indicator-registry.json
  assessment-cli verify -path configs/indicator-registry.json

Use 'assessment-cli <command> -h' for more information about a command.
` + "\n")
}
