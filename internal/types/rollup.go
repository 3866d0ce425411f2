package types

// StatusBreakdown counts records per call outcome for one dataset or view.
// Other holds statuses that matched none of the named outcome buckets;
// it is kept visible rather than folded into Missed.
type StatusBreakdown struct {
	Total            int `json:"total"`
	Answered         int `json:"answered"`
	Missed           int `json:"missed"`
	Busy             int `json:"busy"`
	Failed           int `json:"failed"`
	Abandoned        int `json:"abandoned"`
	Other            int `json:"other"`
	Transferred      int `json:"transferred"`
	RealConversation int `json:"realConversation"`
	LikelyAbandoned  int `json:"likelyAbandoned"`
}

// DirectionStats aggregates calls sharing one direction.
type DirectionStats struct {
	Direction   Direction `json:"direction"`
	Total       int       `json:"total"`
	Answered    int       `json:"answered"`
	Missed      int       `json:"missed"`
	MeanRinging float64   `json:"meanRingingSeconds"`
	MeanTalking float64   `json:"meanTalkingSeconds"`
}

// HourStats aggregates calls placed within one hour of day.
type HourStats struct {
	Hour        int     `json:"hour"` // 0-23
	Total       int     `json:"total"`
	Answered    int     `json:"answered"`
	Missed      int     `json:"missed"`
	MeanRinging float64 `json:"meanRingingSeconds"`
	MeanTalking float64 `json:"meanTalkingSeconds"`
}

// WeekdayStats aggregates calls placed on one day of the week.
type WeekdayStats struct {
	Weekday     int     `json:"weekday"` // 0=Sunday, 6=Saturday
	Total       int     `json:"total"`
	Answered    int     `json:"answered"`
	Missed      int     `json:"missed"`
	MeanRinging float64 `json:"meanRingingSeconds"`
	MeanTalking float64 `json:"meanTalkingSeconds"`
}

// UserStats aggregates calls originated by one user (extension).
type UserStats struct {
	User        string  `json:"user"`
	UserNumber  string  `json:"userNumber"`
	Total       int     `json:"total"`
	Answered    int     `json:"answered"`
	Missed      int     `json:"missed"`
	MeanRinging float64 `json:"meanRingingSeconds"`
	MeanTalking float64 `json:"meanTalkingSeconds"`
}
