package cmd

import (
	"testing"

	"liftec/config"
)

func TestDefaultExportPath(t *testing.T) {
	cfg := &config.Config{
		User: config.UserConfig{Name: "Max Mustermann", Language: "de"},
	}

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "csv", format: "csv", want: "Max_Mustermann_2024-03.csv"},
		{name: "excel", format: "excel", want: "Arbeitszeit Max Mustermann März 2024.xlsx"},
		{name: "xlsx alias", format: "XLSX", want: "Arbeitszeit Max Mustermann März 2024.xlsx"},
		{name: "unknown falls back to csv", format: "", want: "Max_Mustermann_2024-03.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultExportPath(tt.format, cfg, 2024, 3)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
