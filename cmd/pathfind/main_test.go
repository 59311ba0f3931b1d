package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/milk9111/evermaze/common"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    common.Point
		wantErr bool
	}{
		{in: "3,4", want: common.Point{X: 3, Y: 4}},
		{in: " 12 , 0 ", want: common.Point{X: 12, Y: 0}},
		{in: "3", wantErr: true},
		{in: "a,1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("parsePoint(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestRunControls(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, options{level: "controls", layer: "controls_one", from: "0,24", to: "12,20", heuristic: "manhattan"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "reached=true") {
		t.Fatalf("target not reached:\n%s", text)
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 2+25 {
		t.Fatalf("%d lines:\n%s", len(lines), text)
	}
	if lines[2+24][0] != 'S' || lines[2+20][12] != 'T' {
		t.Fatalf("markers misplaced:\n%s", text)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []options{
		{level: "nowhere", from: "0,0", heuristic: "manhattan"},
		{level: "tutorial", from: "x", heuristic: "manhattan"},
		{level: "tutorial", from: "0,0", heuristic: "zigzag"},
		{level: "tutorial", layer: "missing", from: "0,0", heuristic: "manhattan"},
	}
	for _, opts := range tests {
		if err := run(&bytes.Buffer{}, opts); err == nil {
			t.Fatalf("run(%+v): expected error", opts)
		}
	}
}
