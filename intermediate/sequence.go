package intermediate

import (
	"fmt"
	"slices"
)

// Handler call sequence phases.
// ENUM(idle, document, document-header, sequence-ready, page-sequence, page, page-header, page-header-done, page-content, page-content-done, page-trailer, page-done, document-trailer, document-trailer-done, ended)
type Phase int

// DocumentHandler structural calls.
// ENUM(start-document, start-document-header, end-document-header, start-page-sequence, start-page, start-page-header, end-page-header, start-page-content, end-page-content, start-page-trailer, end-page-trailer, end-page, end-page-sequence, start-document-trailer, end-document-trailer, end-document)
type Call int

type transition struct {
	from Phase
	to   Phase
}

var transitions = map[Call]transition{
	CallStartDocument:        {PhaseIdle, PhaseDocument},
	CallStartDocumentHeader:  {PhaseDocument, PhaseDocumentHeader},
	CallEndDocumentHeader:    {PhaseDocumentHeader, PhaseSequenceReady},
	CallStartPageSequence:    {PhaseSequenceReady, PhasePageSequence},
	CallStartPage:            {PhasePageSequence, PhasePage},
	CallStartPageHeader:      {PhasePage, PhasePageHeader},
	CallEndPageHeader:        {PhasePageHeader, PhasePageHeaderDone},
	CallStartPageContent:     {PhasePageHeaderDone, PhasePageContent},
	CallEndPageContent:       {PhasePageContent, PhasePageContentDone},
	CallStartPageTrailer:     {PhasePageContentDone, PhasePageTrailer},
	CallEndPageTrailer:       {PhasePageTrailer, PhasePageDone},
	CallEndPage:              {PhasePageDone, PhasePageSequence},
	CallEndPageSequence:      {PhasePageSequence, PhaseSequenceReady},
	CallStartDocumentTrailer: {PhaseSequenceReady, PhaseDocumentTrailer},
	CallEndDocumentTrailer:   {PhaseDocumentTrailer, PhaseDocumentTrailerDone},
	CallEndDocument:          {PhaseDocumentTrailerDone, PhaseEnded},
}

// Sequence enforces DocumentHandler call order. Handlers embed it and call
// Advance first thing in every structural method. Violations are bugs in the
// caller and panic.
type Sequence struct {
	phase Phase
}

func (s *Sequence) Phase() Phase {
	return s.phase
}

// Advance moves to the phase following c.
func (s *Sequence) Advance(c Call) {
	t, ok := transitions[c]
	if !ok {
		panic(fmt.Sprintf("intermediate: unknown call %d", c))
	}
	if s.phase != t.from {
		panic(fmt.Sprintf("intermediate: %s called in phase %s, expected %s", c, s.phase, t.from))
	}
	s.phase = t.to
}

// Expect checks that op happens in one of the allowed phases.
func (s *Sequence) Expect(op string, allowed ...Phase) {
	if !slices.Contains(allowed, s.phase) {
		panic(fmt.Sprintf("intermediate: %s called in phase %s", op, s.phase))
	}
}

// Phases where extension attachments are accepted.
var extensionPhases = []Phase{PhaseDocumentHeader, PhasePageHeader, PhasePageTrailer, PhaseDocumentTrailer}

// ExpectExtension checks HandleExtension placement.
func (s *Sequence) ExpectExtension() {
	s.Expect("HandleExtension", extensionPhases...)
}

// ExpectLinks checks link and resolved action placement.
func (s *Sequence) ExpectLinks(op string) {
	s.Expect(op, PhasePageTrailer, PhaseDocumentTrailer)
}
