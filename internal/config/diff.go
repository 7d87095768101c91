package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/bunt"
	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/merchant-prince/laravel-docker/internal/output"
)

// Render serializes cfg in the given format.
func Render(cfg *Config, format output.Format) ([]byte, error) {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}
		return data, nil
	}
}

// Diff returns a human-readable report of the differences between the
// built-in defaults and cfg. The report is empty when they are equal.
func Diff(cfg *Config, useColor bool) (string, error) {
	from, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling defaults: %w", err)
	}
	to, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	return diffYAML(from, to, useColor)
}

func diffYAML(from, to []byte, useColor bool) (string, error) {
	fromInput, err := parseYAMLInput("defaults", from)
	if err != nil {
		return "", fmt.Errorf("parsing defaults: %w", err)
	}
	toInput, err := parseYAMLInput("effective", to)
	if err != nil {
		return "", fmt.Errorf("parsing config: %w", err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing config: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	if !useColor {
		bunt.SetColorSettings(bunt.OFF, bunt.OFF)
	}

	var buf bytes.Buffer
	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}
