// Package gate implements the TQ safety gate: the pure mapping from a
// guest's age/consent answers to an authorization status.
package gate

import (
	"github.com/festwine/tasting-gate/internal/clock"
	"github.com/festwine/tasting-gate/internal/model"
)

// Evaluate classifies a guest.  The rule is total:
//
//	ageVerified && consentGiven  -> AUTHORIZED
//	ageVerified && !consentGiven -> PENDING
//	!ageVerified                 -> DENIED (consent irrelevant)
//
// Age is the hard legal gate and cannot be overridden; missing consent
// only defers to the booth operator, hence PENDING rather than DENIED.
// A verification timestamp is recorded only for AUTHORIZED; the other
// two statuses carry none.  No side effects beyond reading the clock.
func Evaluate(ageVerified, consentGiven bool, clk clock.Clock) model.ConsentState {
	s := model.ConsentState{
		AgeVerified:  ageVerified,
		ConsentGiven: consentGiven,
	}
	switch {
	case !ageVerified:
		s.Status = model.StatusDenied
	case !consentGiven:
		s.Status = model.StatusPending
	default:
		s.Status = model.StatusAuthorized
		t := clk.Now()
		s.VerifiedAt = &t
	}
	return s
}

// EvaluateWithStory runs Evaluate and records the orthogonal
// story/media consent flag.  Story consent never affects Status.
func EvaluateWithStory(ageVerified, consentGiven, storyConsent bool, clk clock.Clock) model.ConsentState {
	s := Evaluate(ageVerified, consentGiven, clk)
	s.StoryConsent = storyConsent
	return s
}
