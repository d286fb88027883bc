package statemachine

import (
	"strings"
	"testing"

	"food-ordering-api/models"
)

func TestValid(t *testing.T) {
	for _, s := range AllStatuses() {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false", s)
		}
	}
	for _, s := range []models.OrderStatus{"", "PLACED", "shipped", "Delivered"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		wantErr  bool
	}{
		{models.StatusPending, models.StatusConfirmed, false},
		{models.StatusConfirmed, models.StatusPreparing, false},
		{models.StatusReady, models.StatusOutForDelivery, false},
		{models.StatusOutForDelivery, models.StatusDelivered, false},
		{models.StatusPreparing, models.StatusCancelled, false},
		{models.StatusPending, models.StatusDelivered, true},
		{models.StatusConfirmed, models.StatusPending, true},
		{models.StatusDelivered, models.StatusCancelled, true},
		{models.StatusCancelled, models.StatusPending, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CanTransition() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidTransitionsFromTerminal(t *testing.T) {
	for _, s := range TerminalStatuses() {
		if got := ValidTransitionsFrom(s); len(got) != 0 {
			t.Errorf("terminal %s has transitions %v", s, got)
		}
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false", s)
		}
	}
	got := ValidTransitionsFrom(models.StatusPending)
	if len(got) != 2 || got[0] != models.StatusConfirmed || got[1] != models.StatusCancelled {
		t.Fatalf("unexpected transitions from pending: %v", got)
	}
}

func TestCanTransitionMessages(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     string
	}{
		{models.StatusDelivered, models.StatusPending, "none (terminal state)"},
		{models.StatusCancelled, models.StatusConfirmed, "none (terminal state)"},
		{models.StatusPending, models.StatusReady, "confirmed, cancelled"},
		{"teleported", models.StatusPending, "none (unknown state)"},
	}
	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if err == nil || !strings.HasSuffix(err.Error(), tt.want) {
			t.Errorf("CanTransition(%s, %s) = %v, want suffix %q", tt.from, tt.to, err, tt.want)
		}
	}
	if got := TerminalStatuses(); len(got) != 2 || got[0] != models.StatusDelivered || got[1] != models.StatusCancelled {
		t.Fatalf("TerminalStatuses() = %v", got)
	}
}
