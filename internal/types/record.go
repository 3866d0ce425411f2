package types

import "time"

// Direction classifies who originated a call relative to the PBX.
type Direction string

const (
	DirectionInternal Direction = "internal"
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
	DirectionUnknown  Direction = "unknown"
)

// UnknownParty is substituted whenever identity extraction fails,
// so User/Destination fields are never empty.
const UnknownParty = "Unknown"

// CallRecord is one normalized row of a CDR export.
type CallRecord struct {
	CallTime       time.Time `json:"callTime"`
	RingingSeconds int       `json:"ringingSeconds"`
	TalkingSeconds int       `json:"talkingSeconds"`

	// Start equals CallTime; End = Start + ringing + talking.
	// End is never before Start (durations are non-negative).
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	FromParty string `json:"fromParty"`
	ToParty   string `json:"toParty"`

	User              string `json:"user"`
	UserNumber        string `json:"userNumber"`
	Destination       string `json:"destination"`
	DestinationNumber string `json:"destinationNumber"`

	Direction   Direction `json:"direction"`
	StatusRaw   string    `json:"statusRaw"`
	StatusClean string    `json:"statusClean"`

	IsAnswered    bool `json:"isAnswered"`
	IsMissed      bool `json:"isMissed"`
	IsBusy        bool `json:"isBusy"`
	IsFailed      bool `json:"isFailed"`
	IsAbandoned   bool `json:"isAbandoned"`
	IsTransferred bool `json:"isTransferred"`

	// RealConversation: answered with talking time on the line.
	// LikelyAbandoned: answered but nobody ever talked.
	RealConversation bool `json:"realConversation"`
	LikelyAbandoned  bool `json:"likelyAbandoned"`
}

// Contains reports whether the call was active at instant t.
// The interval is closed at both ends: a call counts as concurrent
// at the exact instant it starts or ends.
func (r CallRecord) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
