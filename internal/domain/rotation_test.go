package domain

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestAssign_WrapsFromCurrentTurn(t *testing.T) {
	s := &RotationState{
		People:      []string{"Alice", "Bob", "Carol"},
		Chores:      []string{"Dishes", "Trash"},
		CurrentTurn: 1,
	}

	got := s.Assign()
	want := []Pairing{
		{Person: "Bob", Chore: "Dishes"},
		{Person: "Carol", Chore: "Trash"},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d pairings, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pairing %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	msg := RenderMessage(got)
	expected := "**This week's chores:**\nBob is assigned Dishes\nCarol is assigned Trash"
	if msg != expected {
		t.Errorf("unexpected message:\n%q\nwant:\n%q", msg, expected)
	}

	if s.NextTurn() != 2 {
		t.Errorf("expected next turn 2, got %d", s.NextTurn())
	}
}

func TestAssign_MoreChoresThanPeople(t *testing.T) {
	s := &RotationState{
		People:      []string{"A", "B", "C"},
		Chores:      []string{"c1", "c2", "c3", "c4", "c5"},
		CurrentTurn: 2,
	}

	got := s.Assign()
	if len(got) != 5 {
		t.Fatalf("expected 5 pairings, got %d", len(got))
	}

	// 4-е и 5-е дело снова начинаются с people[turn%3]
	if got[3].Person != s.People[2%3] {
		t.Errorf("4th chore: expected %s, got %s", s.People[2%3], got[3].Person)
	}
	if got[4].Person != s.People[3%3] {
		t.Errorf("5th chore: expected %s, got %s", s.People[3%3], got[4].Person)
	}
}

func TestAssign_FewerChoresThanPeople(t *testing.T) {
	s := &RotationState{
		People:      []string{"A", "B", "C", "D"},
		Chores:      []string{"Vacuum"},
		CurrentTurn: 3,
	}

	got := s.Assign()
	if len(got) != 1 || got[0].Person != "D" {
		t.Errorf("expected D→Vacuum, got %+v", got)
	}
}

func TestNextTurn_InRangeAndPeriodic(t *testing.T) {
	for n := 1; n <= 7; n++ {
		people := make([]string, n)
		for i := range people {
			people[i] = string(rune('A' + i))
		}

		for start := 0; start < n; start++ {
			s := &RotationState{People: people, Chores: []string{"x"}, CurrentTurn: start}

			for step := 0; step < n; step++ {
				next := s.NextTurn()
				if next < 0 || next >= n {
					t.Fatalf("n=%d: next turn %d out of range", n, next)
				}
				s.CurrentTurn = next
			}

			if s.CurrentTurn != start {
				t.Errorf("n=%d: expected turn to return to %d, got %d", n, start, s.CurrentTurn)
			}
		}
	}
}

func TestNextTurn_NormalizesOutOfRangeTurn(t *testing.T) {
	s := &RotationState{People: []string{"A", "B"}, Chores: []string{"x"}, CurrentTurn: 5}
	if s.NextTurn() != 0 {
		t.Errorf("expected 0, got %d", s.NextTurn())
	}
	if got := s.Assign(); got[0].Person != "B" {
		t.Errorf("expected B, got %s", got[0].Person)
	}
}

func TestAssign_HugeTurnDoesNotOverflow(t *testing.T) {
	raw := `{"people":["A","B","C"],"chores":["x","y"],"current_turn":"` + strconv.Itoa(math.MaxInt) + `"}`

	s, err := DecodeRotationState([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// MaxInt mod 3 = 1
	got := s.Assign()
	if len(got) != 2 || got[0].Person != "B" || got[1].Person != "C" {
		t.Errorf("unexpected pairings %v", got)
	}
	if next := s.NextTurn(); next != 2 {
		t.Errorf("expected next turn 2, got %d", next)
	}
}

func TestDecodeRotationState_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		turn int
	}{
		{"number", `{"people":["A","B"],"chores":["x"],"current_turn":1}`, 1},
		{"numeric string", `{"people":["A","B"],"chores":["x"],"current_turn":"1"}`, 1},
		{"extra fields", `{"AssignmentId":"latest","people":["A"],"chores":[],"current_turn":0}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeRotationState([]byte(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.CurrentTurn != tt.turn {
				t.Errorf("expected turn %d, got %d", tt.turn, s.CurrentTurn)
			}
		})
	}
}

func TestDecodeRotationState_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"missing people", `{"chores":["x"],"current_turn":0}`, "people"},
		{"empty people", `{"people":[],"chores":["x"],"current_turn":0}`, "people"},
		{"people not strings", `{"people":[1,2],"chores":["x"],"current_turn":0}`, "people"},
		{"blank person", `{"people":["A",""],"chores":["x"],"current_turn":0}`, "people"},
		{"missing chores", `{"people":["A"],"current_turn":0}`, "chores"},
		{"missing turn", `{"people":["A"],"chores":["x"]}`, "current_turn"},
		{"null turn", `{"people":["A"],"chores":["x"],"current_turn":null}`, "current_turn"},
		{"fractional turn", `{"people":["A"],"chores":["x"],"current_turn":1.5}`, "current_turn"},
		{"word turn", `{"people":["A"],"chores":["x"],"current_turn":"two"}`, "current_turn"},
		{"bool turn", `{"people":["A"],"chores":["x"],"current_turn":true}`, "current_turn"},
		{"negative turn", `{"people":["A"],"chores":["x"],"current_turn":-1}`, "current_turn"},
		{"not an object", `["A"]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRotationState([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("expected ErrInvalidState, got %v", err)
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %T", err)
			}
			if schemaErr.Field != tt.field {
				t.Errorf("expected field %q, got %q (%v)", tt.field, schemaErr.Field, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := &RotationState{People: []string{"A"}, Chores: []string{"x"}}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noChores := &RotationState{People: []string{"A"}}
	if err := noChores.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState for nil chores, got %v", err)
	}
}

func TestValidateStored(t *testing.T) {
	tests := []struct {
		name    string
		state   RotationState
		wantErr bool
	}{
		{"first index", RotationState{People: []string{"A", "B", "C"}, Chores: []string{"x"}, CurrentTurn: 0}, false},
		{"last index", RotationState{People: []string{"A", "B", "C"}, Chores: []string{"x"}, CurrentTurn: 2}, false},
		{"equal to len", RotationState{People: []string{"A", "B", "C"}, Chores: []string{"x"}, CurrentTurn: 3}, true},
		{"far out of range", RotationState{People: []string{"A", "B", "C"}, Chores: []string{"x"}, CurrentTurn: 99}, true},
		{"huge", RotationState{People: []string{"A"}, Chores: []string{}, CurrentTurn: math.MaxInt}, true},
		{"no people", RotationState{Chores: []string{"x"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.ValidateStored()
			if tt.wantErr {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected *SchemaError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	// чтение остаётся терпимым к значению вне диапазона
	outOfRange := &RotationState{People: []string{"A"}, Chores: []string{"x"}, CurrentTurn: 7}
	if err := outOfRange.Validate(); err != nil {
		t.Errorf("Validate should accept out-of-range turn, got %v", err)
	}
}
