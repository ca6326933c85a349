package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "garbage", args: []string{"two"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %d, got %d (%v)", tc.want, got, err)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := parseVersion("1771900000"); err != nil || v != 1771900000 {
		t.Fatalf("unexpected version %d (%v)", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("x"); err == nil {
		t.Fatalf("expected error for non-numeric target")
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SCOUTING_TEST_FLAG", "Yes")
	if !envBool("SCOUTING_TEST_FLAG") {
		t.Fatalf("expected yes to be true")
	}
	t.Setenv("SCOUTING_TEST_FLAG", "off")
	if envBool("SCOUTING_TEST_FLAG") {
		t.Fatalf("expected off to be false")
	}
}
