package ui

import (
	"strings"
	"testing"
)

func TestSimpleTableRendersRows(t *testing.T) {
	table := NewSimpleTable("Orders", []string{"ID", "Service", "Amount"})
	table.AlignRight(2)
	table.AddRow("ORD-001", "Logo Design", "$450")
	table.AddRow("ORD-002", "Website Development", "$1200")

	out := table.View(NewStyles(LightTheme()))
	for _, want := range []string{"Orders", "ID", "Logo Design", "$1200"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestSimpleTableEmptyIsBlank(t *testing.T) {
	table := NewSimpleTable("Empty", []string{"A"})
	if out := table.View(NewStyles(LightTheme())); out != "" {
		t.Errorf("want empty render, got %q", out)
	}
}
