package service

import (
	"github.com/maptotext/mindmap/internal/model"
)

// The helpers below are the mutation engine proper: pure, copy-on-write
// transforms over the ordered bubble sequence. Every lookup resolves
// entities by id at call time; positions are never assumed stable. A
// missing id leaves the input unchanged and reports changed=false so the
// caller can skip the persist.

func cloneBubbles(bubbles []model.Bubble) []model.Bubble {
	next := make([]model.Bubble, len(bubbles))
	copy(next, bubbles)
	return next
}

func appendBubble(bubbles []model.Bubble, b model.Bubble) []model.Bubble {
	next := make([]model.Bubble, 0, len(bubbles)+1)
	next = append(next, bubbles...)
	return append(next, b)
}

func updateBubbleText(bubbles []model.Bubble, bubbleID, text string) ([]model.Bubble, bool) {
	for i := range bubbles {
		if bubbles[i].ID == bubbleID {
			next := cloneBubbles(bubbles)
			next[i].Text = text
			return next, true
		}
	}
	return bubbles, false
}

func setBubbleImportance(bubbles []model.Bubble, bubbleID, label string) ([]model.Bubble, bool) {
	for i := range bubbles {
		if bubbles[i].ID == bubbleID {
			next := cloneBubbles(bubbles)
			next[i].Importance = label
			return next, true
		}
	}
	return bubbles, false
}

func deleteBubble(bubbles []model.Bubble, bubbleID string) ([]model.Bubble, bool) {
	found := false
	next := make([]model.Bubble, 0, len(bubbles))
	for _, b := range bubbles {
		if b.ID == bubbleID && !found {
			found = true
			continue
		}
		next = append(next, b)
	}
	if !found {
		return bubbles, false
	}
	return next, true
}

// moveBubble removes the bubble identified by bubbleID and reinserts it
// immediately before (or after) the bubble identified by targetID. A missing
// bubble, a missing target, or a self-move leaves the sequence unchanged.
func moveBubble(bubbles []model.Bubble, bubbleID, targetID string, after bool) ([]model.Bubble, bool) {
	if bubbleID == targetID {
		return bubbles, false
	}
	var moved *model.Bubble
	targetSeen := false
	rest := make([]model.Bubble, 0, len(bubbles))
	for _, b := range bubbles {
		if b.ID == bubbleID && moved == nil {
			picked := b
			moved = &picked
			continue
		}
		if b.ID == targetID {
			targetSeen = true
		}
		rest = append(rest, b)
	}
	if moved == nil || !targetSeen {
		return bubbles, false
	}
	next := make([]model.Bubble, 0, len(bubbles))
	for _, b := range rest {
		if b.ID == targetID && !after {
			next = append(next, *moved)
		}
		next = append(next, b)
		if b.ID == targetID && after {
			next = append(next, *moved)
		}
	}
	return next, true
}

func appendKeyword(bubbles []model.Bubble, bubbleID string, kw model.Keyword) ([]model.Bubble, bool) {
	for i := range bubbles {
		if bubbles[i].ID == bubbleID {
			next := cloneBubbles(bubbles)
			kws := make([]model.Keyword, 0, len(next[i].Keywords)+1)
			kws = append(kws, next[i].Keywords...)
			next[i].Keywords = append(kws, kw)
			return next, true
		}
	}
	return bubbles, false
}

// Keyword lookups qualify by bubble id first: the same keyword id under a
// different bubble never matches.
func updateKeyword(bubbles []model.Bubble, bubbleID, keywordID, value string) ([]model.Bubble, bool) {
	for i := range bubbles {
		if bubbles[i].ID != bubbleID {
			continue
		}
		for j := range bubbles[i].Keywords {
			if bubbles[i].Keywords[j].ID == keywordID {
				next := cloneBubbles(bubbles)
				kws := make([]model.Keyword, len(next[i].Keywords))
				copy(kws, next[i].Keywords)
				kws[j].Value = value
				next[i].Keywords = kws
				return next, true
			}
		}
	}
	return bubbles, false
}

func deleteKeyword(bubbles []model.Bubble, bubbleID, keywordID string) ([]model.Bubble, bool) {
	for i := range bubbles {
		if bubbles[i].ID != bubbleID {
			continue
		}
		found := false
		kws := make([]model.Keyword, 0, len(bubbles[i].Keywords))
		for _, kw := range bubbles[i].Keywords {
			if kw.ID == keywordID && !found {
				found = true
				continue
			}
			kws = append(kws, kw)
		}
		if !found {
			return bubbles, false
		}
		next := cloneBubbles(bubbles)
		next[i].Keywords = kws
		return next, true
	}
	return bubbles, false
}
