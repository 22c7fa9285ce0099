package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// thread runs the focus protocol over ids 0..n-1 and returns the claims and
// the token emitted by every widget.
func thread(n int, start Token) ([]Claim, []Token) {
	claims := make([]Claim, n)
	tokens := make([]Token, n)
	tok := start
	for i := 0; i < n; i++ {
		claims[i], tok = StepFocus(tok, ID(i))
		tokens[i] = tok
	}
	return claims, tokens
}

func TestFocusRequestClaimedExactlyOnce(t *testing.T) {
	const n = 6
	for k := 0; k < n; k++ {
		claims, tokens := thread(n, Request(ID(k)))
		for i, c := range claims {
			if i == k {
				assert.Equal(t, ClaimTaken, c, "widget %d", i)
			} else {
				assert.Equal(t, ClaimNone, c, "widget %d", i)
			}
		}
		for i := k; i < n; i++ {
			assert.Equal(t, NoFocus{}, tokens[i].Signal, "token after widget %d", i)
		}
		for i := 0; i < k; i++ {
			assert.Equal(t, RequestFocus{Target: ID(k)}, tokens[i].Signal)
		}
	}
}

func TestFocusRequestOutOfRangeFallsOff(t *testing.T) {
	for _, k := range []ID{-3, 6, 100} {
		claims, tokens := thread(6, Request(k))
		for _, c := range claims {
			assert.Equal(t, ClaimNone, c)
		}
		settled, dropped := Settle(tokens[len(tokens)-1])
		assert.True(t, dropped)
		assert.Equal(t, NoFocus{}, settled.Signal)
	}
}

func TestHasFocusPassesThrough(t *testing.T) {
	claims, tokens := thread(3, Focused())
	for i := range claims {
		assert.Equal(t, ClaimInherited, claims[i])
		assert.True(t, claims[i].Focused())
		assert.Equal(t, HasFocus{}, tokens[i].Signal)
		assert.Equal(t, ID(i), tokens[i].Owner)
	}
}

func TestNoFocusPassesThrough(t *testing.T) {
	claims, tokens := thread(3, Unfocused())
	for i := range claims {
		assert.Equal(t, ClaimNone, claims[i])
		assert.Equal(t, NoFocus{}, tokens[i].Signal)
	}
	_, dropped := Settle(tokens[2])
	assert.False(t, dropped)
}

func TestSignalName(t *testing.T) {
	assert.Equal(t, "has-focus", SignalName(HasFocus{}))
	assert.Equal(t, "no-focus", SignalName(NoFocus{}))
	assert.Equal(t, "request(4)", SignalName(RequestFocus{Target: 4}))
	assert.Equal(t, "taken", ClaimTaken.String())
}
