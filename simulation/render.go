package simulation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Render formats a simulation as the fixed shape report surfaced to users and agents.
func Render(result *SimulationResult) string {
	status := "Failed"
	if result.Status {
		status = "Success"
	}

	var report strings.Builder
	report.WriteString("Simulation Results:\n")
	fmt.Fprintf(&report, "Status: %s\n", status)
	fmt.Fprintf(&report, "Gas Used: %d\n", result.GasUsed)
	fmt.Fprintf(&report, "Transaction to: %s\n", result.To)
	fmt.Fprintf(&report, "Value: %s\n", result.Value)
	fmt.Fprintf(&report, "From: %s\n", result.From)
	fmt.Fprintf(&report, "State Changes: %s\n", prettyStateChanges(result.StateChanges))

	return report.String()
}

func prettyStateChanges(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, trimmed, "", "  "); err != nil {
		return string(trimmed)
	}
	return indented.String()
}

// RenderError formats any failure in the simulation flow.
func RenderError(err error) string {
	return fmt.Sprintf("Error simulating transaction: %v", err)
}
