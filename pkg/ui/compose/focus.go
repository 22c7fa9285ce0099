package compose

import "fmt"

// ID identifies a focusable widget. Ids are handed out in evaluation order by
// the static pass (see Analyze), starting at 0.
type ID int

// NoOwner is the owner of a token no focusable widget has handled yet.
const NoOwner ID = -1

// Signal is the state carried by a focus token. The variants are HasFocus,
// NoFocus and RequestFocus.
type Signal interface {
	isSignal()
}

// HasFocus marks widgets below a focused ancestor. Composition passes it on
// unchanged; whether a widget reacts to it is the widget's own business.
type HasFocus struct{}

func (HasFocus) isSignal() {}

// NoFocus means no focus is being handed down or requested.
type NoFocus struct{}

func (NoFocus) isSignal() {}

// RequestFocus asks the widget with id Target to take focus.
type RequestFocus struct {
	Target ID
}

func (RequestFocus) isSignal() {}

// Token is threaded left to right through every focusable widget of a tick:
// widget n's output token is widget n+1's input token.
type Token struct {
	Owner  ID
	Signal Signal
}

// Unfocused is the token that requests nothing.
func Unfocused() Token {
	return Token{Owner: NoOwner, Signal: NoFocus{}}
}

// Focused is the token handed to the children of a focused widget.
func Focused() Token {
	return Token{Owner: NoOwner, Signal: HasFocus{}}
}

// Request is the token asking widget id to take focus.
func Request(id ID) Token {
	return Token{Owner: NoOwner, Signal: RequestFocus{Target: id}}
}

// Claim is what a focusable widget learns from the token it was given.
type Claim int

const (
	// ClaimNone: the widget is not focused.
	ClaimNone Claim = iota
	// ClaimInherited: an ancestor is focused.
	ClaimInherited
	// ClaimTaken: the widget consumed a request for its own id.
	ClaimTaken
)

// String returns the claim name.
func (c Claim) String() string {
	switch c {
	case ClaimNone:
		return "none"
	case ClaimInherited:
		return "inherited"
	case ClaimTaken:
		return "taken"
	default:
		return fmt.Sprintf("Claim(%d)", int(c))
	}
}

// Focused reports whether the widget should render as focused.
func (c Claim) Focused() bool {
	return c != ClaimNone
}

// StepFocus applies the focus protocol for the focusable widget id.
//
// HasFocus and NoFocus pass through unchanged. RequestFocus for id is
// consumed: the widget takes focus and emits NoFocus. A request for another id
// passes through so a later widget may claim it.
func StepFocus(tok Token, id ID) (Claim, Token) {
	switch s := tok.Signal.(type) {
	case HasFocus:
		return ClaimInherited, Token{Owner: id, Signal: s}
	case NoFocus, nil:
		return ClaimNone, Token{Owner: id, Signal: NoFocus{}}
	case RequestFocus:
		if s.Target == id {
			return ClaimTaken, Token{Owner: id, Signal: NoFocus{}}
		}
		return ClaimNone, Token{Owner: id, Signal: s}
	default:
		panic(fmt.Sprintf("compose: unknown focus signal %T", tok.Signal))
	}
}

// Settle resolves the token left at the end of a sequence. A request nobody
// claimed expires as NoFocus; dropped reports whether that happened.
func Settle(tok Token) (settled Token, dropped bool) {
	if _, ok := tok.Signal.(RequestFocus); ok {
		return Token{Owner: tok.Owner, Signal: NoFocus{}}, true
	}
	if tok.Signal == nil {
		return Token{Owner: tok.Owner, Signal: NoFocus{}}, false
	}
	return tok, false
}

// SignalName returns a short name for the token's signal, for logs and traces.
func SignalName(s Signal) string {
	switch v := s.(type) {
	case HasFocus:
		return "has-focus"
	case NoFocus, nil:
		return "no-focus"
	case RequestFocus:
		return fmt.Sprintf("request(%d)", v.Target)
	default:
		panic(fmt.Sprintf("compose: unknown focus signal %T", s))
	}
}
