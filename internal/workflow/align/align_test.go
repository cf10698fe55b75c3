package align

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otisium-api/internal/workflow/model"
)

func seg(s string) model.SuspiciousSegment {
	return model.SuspiciousSegment{Segment: s, Reason: "r", Severity: model.SeverityMedium}
}

func concat(spans []model.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Content)
	}
	return b.String()
}

func assertWellFormed(t *testing.T, text string, spans []model.Span) {
	t.Helper()
	require.Equal(t, text, concat(spans))
	prevEnd := 0
	for _, s := range spans {
		assert.Equal(t, prevEnd, s.Start, "spans must be contiguous")
		assert.Equal(t, text[s.Start:s.End], s.Content)
		prevEnd = s.End
	}
	hl := Highlighted(spans)
	for i := 1; i < len(hl); i++ {
		assert.GreaterOrEqual(t, hl[i].Start, hl[i-1].End)
	}
}

func TestAlignOverlappingClaimsKeepsEarliest(t *testing.T) {
	text := "the cat sat on the mat"
	spans := Align(text, []model.SuspiciousSegment{seg("cat sat on"), seg("the cat sat")})

	assertWellFormed(t, text, spans)
	hl := Highlighted(spans)
	require.Len(t, hl, 1)
	assert.Equal(t, "the cat sat", hl[0].Content)
	assert.Equal(t, 0, hl[0].Start)
}

func TestAlignNoCandidates(t *testing.T) {
	spans := Align("plain text", nil)
	require.Len(t, spans, 1)
	assert.Equal(t, model.SpanNormal, spans[0].Type)
	assert.Equal(t, "plain text", spans[0].Content)

	assert.Empty(t, Align("", []model.SuspiciousSegment{seg("x")}))
}

func TestAlignDropsUnmatchedAndUsesFirstOccurrence(t *testing.T) {
	text := "Moreover, it is important. Moreover, it matters."
	spans := Align(text, []model.SuspiciousSegment{seg("Moreover"), seg("not in text"), seg("")})

	assertWellFormed(t, text, spans)
	hl := Highlighted(spans)
	require.Len(t, hl, 1)
	assert.Equal(t, 0, hl[0].Start)
	assert.Equal(t, len("Moreover"), hl[0].End)
}

func TestAlignAdjacentAndMultibyte(t *testing.T) {
	text := "naïve café résumé"
	spans := Align(text, []model.SuspiciousSegment{seg("café"), seg("naïve "), seg("résumé")})

	assertWellFormed(t, text, spans)
	assert.Len(t, Highlighted(spans), 3)
}

func TestAlignRoundTripRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	words := []string{"alpha", "beta", "gamma", "delta", "ε", "日本", " ", ", "}
	for i := 0; i < 200; i++ {
		var b strings.Builder
		n := r.Intn(30)
		for j := 0; j < n; j++ {
			b.WriteString(words[r.Intn(len(words))])
		}
		text := b.String()

		var cands []model.SuspiciousSegment
		m := r.Intn(8)
		for k := 0; k < m; k++ {
			if text != "" && r.Intn(3) > 0 {
				a := r.Intn(len(text))
				e := a + r.Intn(len(text)-a) + 1
				cands = append(cands, seg(text[a:e]))
			} else {
				cands = append(cands, seg(fmt.Sprintf("missing-%d", k)))
			}
		}

		spans := Align(text, cands)
		assertWellFormed(t, text, spans)
	}
}
