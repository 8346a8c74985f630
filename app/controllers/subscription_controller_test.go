package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		already bool
		target  string
		want    string
	}{
		{
			name:    "new subscription",
			already: false,
			target:  "Daily Planet",
			want:    "Subscribed to Daily Planet.",
		},
		{
			name:    "repeat subscription is reported as a no-op",
			already: true,
			target:  "Daily Planet",
			want:    "You are already subscribed to Daily Planet.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, subscribeMessage(tt.already, tt.target))
		})
	}
}

func TestUnsubscribeMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		subscribed bool
		target     string
		want       string
	}{
		{
			name:       "active subscription removed",
			subscribed: true,
			target:     "Morning Brief",
			want:       "Unsubscribed from Morning Brief.",
		},
		{
			name:       "missing subscription is reported as a no-op",
			subscribed: false,
			target:     "Morning Brief",
			want:       "You are not subscribed to Morning Brief.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, unsubscribeMessage(tt.subscribed, tt.target))
		})
	}
}
