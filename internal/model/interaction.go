package model

import "time"

// InteractionType is the kind of contact that happened.
type InteractionType string

const (
	InteractionText         InteractionType = "text"
	InteractionCall         InteractionType = "call"
	InteractionHangout      InteractionType = "hangout"
	InteractionDeepConvo    InteractionType = "deep_convo"
	InteractionEvent        InteractionType = "event"  // attended their event
	InteractionHelped       InteractionType = "helped" // helped with something
	InteractionGroupHangout InteractionType = "group_hangout"
)

// InteractionTypes lists every interaction type.
var InteractionTypes = []InteractionType{
	InteractionText,
	InteractionCall,
	InteractionHangout,
	InteractionDeepConvo,
	InteractionEvent,
	InteractionHelped,
	InteractionGroupHangout,
}

var interactionLabels = map[InteractionType]string{
	InteractionText:         "Texted",
	InteractionCall:         "Called",
	InteractionHangout:      "Hung out",
	InteractionDeepConvo:    "Deep conversation",
	InteractionEvent:        "Attended event",
	InteractionHelped:       "Helped out",
	InteractionGroupHangout: "Group hangout",
}

var interactionIcons = map[InteractionType]string{
	InteractionText:         "💬",
	InteractionCall:         "📞",
	InteractionHangout:      "🤝",
	InteractionDeepConvo:    "💭",
	InteractionEvent:        "🎉",
	InteractionHelped:       "🤲",
	InteractionGroupHangout: "👥",
}

func (t InteractionType) Valid() bool {
	_, ok := interactionLabels[t]
	return ok
}

func (t InteractionType) Label() string {
	if l, ok := interactionLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t InteractionType) Icon() string {
	return interactionIcons[t]
}

// HighQuality reports whether the type counts toward the quality mix.
func (t InteractionType) HighQuality() bool {
	switch t {
	case InteractionDeepConvo, InteractionHangout, InteractionEvent, InteractionHelped:
		return true
	}
	return false
}

// Initiator records who reached out. Empty means unknown.
type Initiator string

const (
	InitiatedByMe     Initiator = "me"
	InitiatedByThem   Initiator = "them"
	InitiatedByMutual Initiator = "mutual"
)

// Valid reports whether i is empty or a known initiator.
func (i Initiator) Valid() bool {
	switch i {
	case "", InitiatedByMe, InitiatedByThem, InitiatedByMutual:
		return true
	}
	return false
}

// Interaction is an immutable logged contact event.
type Interaction struct {
	ID          string          `json:"id" yaml:"id"`
	FriendID    string          `json:"friend_id" yaml:"friend_id"`
	Type        InteractionType `json:"type" yaml:"type"`
	At          time.Time       `json:"at" yaml:"at"`
	Note        string          `json:"note,omitempty" yaml:"note,omitempty"`
	InitiatedBy Initiator       `json:"initiated_by,omitempty" yaml:"initiated_by,omitempty"`
}
