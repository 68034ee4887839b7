package diag

import "testing"

func TestMessageSubstitution(t *testing.T) {
	tests := []struct {
		name string
		d    *Diagnostic
		want string
	}{
		{
			name: "all slots",
			d:    &Diagnostic{Raw: "{a} {b} {c} {d}", A: "1", B: "2", C: "3", D: "4"},
			want: "1 2 3 4",
		},
		{
			name: "first occurrence only",
			d:    &Diagnostic{Raw: "Expected '{a}' and instead saw '{a}'.", A: "==="},
			want: "Expected '===' and instead saw '{a}'.",
		},
		{
			name: "missing argument is empty",
			d:    &Diagnostic{Raw: "'{a}' was used before '{b}'.", A: "x"},
			want: "'x' was used before ''.",
		},
		{
			name: "reason fallback",
			d:    &Diagnostic{Reason: "Missing semicolon."},
			want: "Missing semicolon.",
		},
		{
			name: "no placeholders",
			d:    &Diagnostic{Raw: "Unnecessary semicolon."},
			want: "Unnecessary semicolon.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortOrder(t *testing.T) {
	l := List{
		{Line: 3, Character: 1, Raw: "c"},
		nil,
		{Line: 0, Raw: "no line"},
		{Line: 1, Character: 9, Raw: "b"},
		{Line: 1, Character: 2, Raw: "a"},
		{Line: 3, Character: 1, Raw: "c2"},
	}
	l.Sort()

	want := []string{"a", "b", "c", "c2"}
	for i, raw := range want {
		if l[i] == nil || l[i].Raw != raw {
			t.Fatalf("position %d = %v, want %q", i, l[i], raw)
		}
	}
	// unpositioned entries keep their relative order at the tail
	if l[4] != nil {
		t.Errorf("position 4 = %v, want sentinel", l[4])
	}
	if l[5] == nil || l[5].Raw != "no line" {
		t.Errorf("position 5 = %v, want unpositioned entry", l[5])
	}
	for i := 1; i < 4; i++ {
		prev, cur := l[i-1], l[i]
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Character < prev.Character) {
			t.Errorf("entries %d and %d out of order", i-1, i)
		}
	}
}

func TestShiftSkipsUnpositioned(t *testing.T) {
	l := List{{Line: 1, Character: 4}, nil, {Line: 0}}
	l.Shift(10, 0)
	if l[0].Line != 11 || l[0].Character != 4 {
		t.Errorf("shifted = %d:%d, want 11:4", l[0].Line, l[0].Character)
	}
	if l[2].Line != 0 {
		t.Errorf("unpositioned entry moved to line %d", l[2].Line)
	}
}

func TestCountsAndAborted(t *testing.T) {
	l := List{{Code: "E001"}, {Code: "W033"}, {Code: "W116"}, {Code: "I003"}, nil}
	e, w, i := l.Counts()
	if e != 1 || w != 2 || i != 1 {
		t.Errorf("Counts() = %d, %d, %d", e, w, i)
	}
	if !l.Aborted() {
		t.Error("expected Aborted with sentinel present")
	}
	if (List{{Code: "W033"}}).Aborted() {
		t.Error("unexpected Aborted without sentinel")
	}
}

func TestLimit(t *testing.T) {
	l := List{{}, {}, {}}
	if got := len(l.Limit(2)); got != 2 {
		t.Errorf("Limit(2) len = %d", got)
	}
	if got := len(l.Limit(0)); got != 3 {
		t.Errorf("Limit(0) len = %d", got)
	}
}

func TestCodeSeverity(t *testing.T) {
	cases := map[Code]Severity{"E041": SevError, "W033": SevWarning, "I001": SevInfo, "": SevWarning, "X1": SevWarning}
	for code, want := range cases {
		if got := code.Severity(); got != want {
			t.Errorf("Code(%q).Severity() = %v, want %v", code, got, want)
		}
	}
	if s, ok := ParseSeverity("Warn"); !ok || s != SevWarning {
		t.Errorf("ParseSeverity(Warn) = %v, %v", s, ok)
	}
}
