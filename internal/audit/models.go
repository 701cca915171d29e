package audit

var schemaVersion = "0.1.0"
var logContext = "audit"

type Disposition string

const (
	DispositionNeutral Disposition = "neutral"
	DispositionGood    Disposition = "good"
	DispositionBad     Disposition = "bad"
)

type EventType string

const (
	EvtFileStored         EventType = "file_stored"
	EvtSubmissionStored   EventType = "submission_stored"
	EvtNotificationSent   EventType = "notification_sent"
	EvtNotificationFailed EventType = "notification_failed"
)

type Message struct {
	SubmissionID  *string     `json:"submission_id"`
	LogContext    string      `json:"log_context" validate:"required"`
	SchemaVersion string      `json:"version"     validate:"required"`
	Disposition   Disposition `json:"disposition" validate:"required"`
	Type          EventType   `json:"event_type"  validate:"required"`

	Timestamp int64 `json:"timestamp" validate:"required"`
}

type FileStoredEvent struct {
	StoreID    string `json:"store_id"    validate:"required"`
	ObjectName string `json:"object_name" validate:"required"`
	Reference  string `json:"reference"   validate:"required"`
}

type FileStored struct {
	Event FileStoredEvent `json:"event" validate:"required"`
	Message
}

type SubmissionStoredEvent struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required"`
	ImageCount int    `json:"image_count" validate:"required"`
}

type SubmissionStored struct {
	Event SubmissionStoredEvent `json:"event" validate:"required"`
	Message
}

type NotificationEvent struct {
	Recipient string `json:"recipient" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

type Notification struct {
	Event NotificationEvent `json:"event" validate:"required"`
	Message
}
