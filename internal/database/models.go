package database

import "time"

// Axis names one of the five contribution counters. The set and its order
// are fixed; every score record always carries all five.
type Axis string

const (
	AxisTopic        Axis = "topic"
	AxisQuestion     Axis = "question"
	AxisReply        Axis = "reply"
	AxisEmotion      Axis = "emotion"
	AxisConstructive Axis = "constructive"
)

// Axes lists all axes in display order.
var Axes = [5]Axis{AxisTopic, AxisQuestion, AxisReply, AxisEmotion, AxisConstructive}

// ValidAxis reports whether s names a known axis.
func ValidAxis(s string) bool {
	for _, a := range Axes {
		if Axis(s) == a {
			return true
		}
	}
	return false
}

// Delta is a set of per-axis adjustments. Axes absent from the map are
// treated as zero. Values may be negative; application floors each axis at
// zero independently.
type Delta map[Axis]int

// Message is one observed chat message, kept so reaction events can resolve
// the message author after the fact.
type Message struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	ChatID    int64     `db:"chat_id"`
	MessageID int64     `db:"message_id"`
	UserID    int64     `db:"user_id"`
	Content   string    `db:"content"`
	Label     string    `db:"label"`
	Timestamp time.Time `db:"timestamp"`
}

// UserScore is a user's five contribution counters. Every axis is always
// present and never negative.
type UserScore struct {
	UserID       int64     `db:"user_id"`
	Topic        int       `db:"topic"`
	Question     int       `db:"question"`
	Reply        int       `db:"reply"`
	Emotion      int       `db:"emotion"`
	Constructive int       `db:"constructive"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Values returns the axis values in display order.
func (s *UserScore) Values() [5]int {
	return [5]int{s.Topic, s.Question, s.Reply, s.Emotion, s.Constructive}
}

// Value returns one axis value.
func (s *UserScore) Value(a Axis) int {
	switch a {
	case AxisTopic:
		return s.Topic
	case AxisQuestion:
		return s.Question
	case AxisReply:
		return s.Reply
	case AxisEmotion:
		return s.Emotion
	case AxisConstructive:
		return s.Constructive
	}
	return 0
}

// Max returns the largest axis value.
func (s *UserScore) Max() int {
	max := 0
	for _, v := range s.Values() {
		if v > max {
			max = v
		}
	}
	return max
}

// Profile is a user's registered self-introduction.
type Profile struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	UserID      int64  `db:"user_id"`
	DisplayName string `db:"display_name"`
	TypeText    string `db:"type_text"`
	Bio         string `db:"bio"`
	Interests   string `db:"interests"`
}
