package model

import "time"

type EventType string

const (
	EventParticipantJoined    EventType = "PARTICIPANT_JOINED"
	EventParticipantCompleted EventType = "PARTICIPANT_COMPLETED"
	EventResultsReady         EventType = "RESULTS_READY"
)

type SessionEvent struct {
	Type          EventType     `json:"type"`
	SessionID     SessionID     `json:"session_id"`
	ParticipantID ParticipantID `json:"participant_id,omitempty"`
	Participants  int           `json:"participants"`
	Timestamp     time.Time     `json:"timestamp"`
}
