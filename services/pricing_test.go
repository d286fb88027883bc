package services

import "testing"

func TestPriceLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		fee   float64
		want  Quote
	}{
		{
			name:  "rounds half up",
			lines: []Line{{Price: 10, Quantity: 2}, {Price: 5, Quantity: 1}},
			fee:   3,
			want:  Quote{Subtotal: 25, DeliveryFee: 3, Tax: 3, Total: 31},
		},
		{
			name:  "rounds down below half",
			lines: []Line{{Price: 12.99, Quantity: 1}},
			fee:   2.99,
			want:  Quote{Subtotal: 12.99, DeliveryFee: 2.99, Tax: 1, Total: 16.98},
		},
		{
			name:  "cents add exactly",
			lines: []Line{{Price: 0.1, Quantity: 3}, {Price: 0.2, Quantity: 1}},
			want:  Quote{Subtotal: 0.5, Tax: 0, Total: 0.5},
		},
		{
			name: "empty cart",
			want: Quote{},
		},
		{
			name:  "large quantities",
			lines: []Line{{Price: 14.99, Quantity: 10}},
			fee:   4.99,
			want:  Quote{Subtotal: 149.9, DeliveryFee: 4.99, Tax: 15, Total: 169.89},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceLines(tt.lines, tt.fee)
			if got != tt.want {
				t.Fatalf("PriceLines() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBelowMinimum(t *testing.T) {
	tests := []struct {
		subtotal, minimum float64
		want              bool
	}{
		{14.99, 15, true},
		{15, 15, false},
		{15.01, 15, false},
		{0, 0, false},
		{5, -1, false},
	}
	for _, tt := range tests {
		if got := BelowMinimum(tt.subtotal, tt.minimum); got != tt.want {
			t.Errorf("BelowMinimum(%v, %v) = %v, want %v", tt.subtotal, tt.minimum, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := formatAmount(15); got != "15" {
		t.Errorf("formatAmount(15) = %q", got)
	}
	if got := formatAmount(12.5); got != "12.5" {
		t.Errorf("formatAmount(12.5) = %q", got)
	}
}
