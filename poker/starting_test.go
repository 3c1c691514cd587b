package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStartingHands(t *testing.T) {
	t.Parallel()
	hands := AllStartingHands()
	require.Len(t, hands, 169)

	combos := 0
	names := make(map[string]struct{})
	for _, sh := range hands {
		combos += sh.Combos()
		names[sh.String()] = struct{}{}
	}
	assert.Equal(t, TotalHoleCombos, combos)
	assert.Len(t, names, 169)

	assert.Equal(t, "AA", hands[0].String())
	assert.Equal(t, "AKs", hands[1].String())
	assert.Equal(t, "AKo", hands[2].String())
	assert.Equal(t, "22", hands[168].String())
}

func TestParseStartingHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    StartingHand
		wantErr bool
	}{
		{in: "AA", want: StartingHand{High: Ace, Low: Ace}},
		{in: "AKs", want: StartingHand{High: Ace, Low: King, Suited: true}},
		{in: "KAs", want: StartingHand{High: Ace, Low: King, Suited: true}},
		{in: "T9o", want: StartingHand{High: Ten, Low: Nine}},
		{in: "72o", want: StartingHand{High: Seven, Low: Two}},
		{in: "AAs", wantErr: true},
		{in: "AK", wantErr: true},
		{in: "AKx", wantErr: true},
		{in: "1Ks", wantErr: true},
		{in: "A", wantErr: true},
		{in: "AKso", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStartingHand(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStartingHandOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "AKs", StartingHandOf(ParseCard("Kd"), ParseCard("Ad")).String())
	assert.Equal(t, "AKo", StartingHandOf(ParseCard("Ks"), ParseCard("Ad")).String())
	assert.Equal(t, "77", StartingHandOf(ParseCard("7s"), ParseCard("7d")).String())
}

func TestStartingHandCards(t *testing.T) {
	t.Parallel()
	for _, sh := range AllStartingHands() {
		h := sh.Cards()
		require.Equal(t, 2, h.CountCards(), sh.String())
		cards := h.Cards()
		assert.Equal(t, sh, StartingHandOf(cards[0], cards[1]), sh.String())
	}
}
