package reporter

import (
	"encoding/json"
	"fmt"
	"strings"

	"envgate/internal/validator"
)

// CheckHint tells the operator where to fix a failed check.
const CheckHint = "Check your environment configuration (hosting provider settings or .env file) and set the missing variables."

// FormatMissing formats a single missing key line.
// Format: "{KEY}: required but not set" with the description appended when known.
func FormatMissing(key, description string) string {
	if description == "" {
		return fmt.Sprintf("%s: required but not set", key)
	}
	return fmt.Sprintf("%s: required but not set (%s)", key, description)
}

// FormatCLI formats a validation result for terminal output.
// A failed result lists every missing key on its own line.
func FormatCLI(result validator.Result) string {
	if result.Skipped {
		return fmt.Sprintf("✅ Environment check skipped (mode: %s)\n", result.Mode)
	}
	if result.Valid {
		return "✅ Environment variables validation passed\n"
	}

	descriptions := descriptionsByName(result)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("❌ Environment variables validation failed (mode: %s):\n\n", result.Mode))
	for _, key := range result.Missing {
		sb.WriteString("  - ")
		sb.WriteString(FormatMissing(key, descriptions[key]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(CheckHint)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d missing variable(s)\n", len(result.Missing)))
	return sb.String()
}

// FormatCI formats missing keys as GitHub Actions error annotations.
func FormatCI(result validator.Result) string {
	if result.Valid {
		return ""
	}

	var sb strings.Builder
	for _, key := range result.Missing {
		sb.WriteString(fmt.Sprintf("::error title=envgate::%s is required but not set\n", key))
	}
	sb.WriteString(fmt.Sprintf("\n❌ Environment variables validation failed (mode: %s): %d missing variable(s)\n",
		result.Mode, len(result.Missing)))
	return sb.String()
}

// FormatJSON formats the result as JSON.
func FormatJSON(result validator.Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatList formats the status of every key as an aligned table.
// Values are never printed.
func FormatList(result validator.Result) string {
	width := len("KEY")
	for _, k := range result.Keys {
		if len(k.Name) > width {
			width = len(k.Name)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-8s  %-5s  %s\n", width, "KEY", "REQUIRED", "SET", "DESCRIPTION"))
	for _, k := range result.Keys {
		sb.WriteString(fmt.Sprintf("%-*s  %-8s  %-5s  %s\n",
			width, k.Name, yesNo(k.Required), yesNo(k.Present), k.Description))
	}
	return sb.String()
}

func descriptionsByName(result validator.Result) map[string]string {
	m := make(map[string]string, len(result.Keys))
	for _, k := range result.Keys {
		m[k.Name] = k.Description
	}
	return m
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
