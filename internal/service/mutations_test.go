package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maptotext/mindmap/internal/model"
)

func bubbleSeq(ids ...string) []model.Bubble {
	out := make([]model.Bubble, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Bubble{ID: id, Text: "text-" + id, Importance: model.ImportanceNormal})
	}
	return out
}

func seqIDs(bubbles []model.Bubble) []string {
	out := make([]string, 0, len(bubbles))
	for _, b := range bubbles {
		out = append(out, b.ID)
	}
	return out
}

func TestMoveBubbleBeforeAndAfter(t *testing.T) {
	base := bubbleSeq("a", "b", "c", "d")

	next, changed := moveBubble(base, "d", "b", false)
	require.True(t, changed)
	require.Equal(t, []string{"a", "d", "b", "c"}, seqIDs(next))

	next, changed = moveBubble(base, "a", "c", true)
	require.True(t, changed)
	require.Equal(t, []string{"b", "c", "a", "d"}, seqIDs(next))

	// input sequence stays untouched
	require.Equal(t, []string{"a", "b", "c", "d"}, seqIDs(base))
}

func TestMoveBubbleNoops(t *testing.T) {
	base := bubbleSeq("a", "b", "c")

	for _, tc := range []struct {
		name               string
		bubbleID, targetID string
		after              bool
	}{
		{"self move before", "b", "b", false},
		{"self move after", "b", "b", true},
		{"missing bubble", "zz", "a", false},
		{"missing target", "a", "zz", true},
	} {
		next, changed := moveBubble(base, tc.bubbleID, tc.targetID, tc.after)
		require.False(t, changed, tc.name)
		require.Equal(t, []string{"a", "b", "c"}, seqIDs(next), tc.name)
	}
}

func TestMoveBubblePreservesLength(t *testing.T) {
	base := bubbleSeq("a", "b", "c", "d", "e")
	moves := []struct {
		bubbleID, targetID string
		after              bool
	}{
		{"a", "e", true},
		{"c", "b", false},
		{"e", "a", false},
		{"b", "d", true},
	}
	current := base
	for _, mv := range moves {
		next, _ := moveBubble(current, mv.bubbleID, mv.targetID, mv.after)
		require.Len(t, next, len(base))
		current = next
	}
}

func TestUpdateAndDeleteBubbleCopyOnWrite(t *testing.T) {
	base := bubbleSeq("a", "b")

	next, changed := updateBubbleText(base, "b", "changed")
	require.True(t, changed)
	require.Equal(t, "changed", next[1].Text)
	require.Equal(t, "text-b", base[1].Text)

	next, changed = setBubbleImportance(base, "a", model.ImportanceMainIdea)
	require.True(t, changed)
	require.Equal(t, model.ImportanceMainIdea, next[0].Importance)
	require.Equal(t, model.ImportanceNormal, base[0].Importance)

	next, changed = deleteBubble(base, "a")
	require.True(t, changed)
	require.Equal(t, []string{"b"}, seqIDs(next))
	require.Len(t, base, 2)

	_, changed = updateBubbleText(base, "zz", "x")
	require.False(t, changed)
	_, changed = setBubbleImportance(base, "zz", model.ImportanceLesson)
	require.False(t, changed)
	_, changed = deleteBubble(base, "zz")
	require.False(t, changed)
}

func TestKeywordHelpersScopeByBubble(t *testing.T) {
	base := bubbleSeq("a", "b")
	next, changed := appendKeyword(base, "a", model.Keyword{ID: "kw1", Value: "alpha"})
	require.True(t, changed)
	require.Len(t, next[0].Keywords, 1)
	require.Empty(t, base[0].Keywords)

	// same keyword id under a different bubble must not match
	_, changed = updateKeyword(next, "b", "kw1", "beta")
	require.False(t, changed)
	_, changed = deleteKeyword(next, "b", "kw1")
	require.False(t, changed)

	updated, changed := updateKeyword(next, "a", "kw1", "beta")
	require.True(t, changed)
	require.Equal(t, "beta", updated[0].Keywords[0].Value)
	require.Equal(t, "alpha", next[0].Keywords[0].Value)

	removed, changed := deleteKeyword(updated, "a", "kw1")
	require.True(t, changed)
	require.Empty(t, removed[0].Keywords)
	require.Len(t, updated[0].Keywords, 1)

	_, changed = appendKeyword(base, "zz", model.Keyword{ID: "kw2", Value: "x"})
	require.False(t, changed)
}
