package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/formintake/intake-api/internal/logger"
)

type Context struct {
	SubmissionID *string
}

func newMessage(c Context, t EventType, d Disposition) Message {
	return Message{
		SubmissionID:  c.SubmissionID,
		LogContext:    logContext,
		SchemaVersion: schemaVersion,
		Disposition:   d,
		Type:          t,
		Timestamp:     time.Now().UTC().UnixMilli(),
	}
}

func emit(event any, fallback string, args ...any) {
	evtStr, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error(fallback, args...)
		return
	}

	fmt.Println(string(evtStr))
}

func LogFileStored(c Context, storeID string, objectName string, reference string) {
	event := FileStored{}
	event.Message = newMessage(c, EvtFileStored, DispositionNeutral)

	event.Event.StoreID = storeID
	event.Event.ObjectName = objectName
	event.Event.Reference = reference

	emit(event, "could not serialize FileStored event",
		"storeID", storeID,
		"objectName", objectName,
		"reference", reference,
	)
}

func LogSubmissionStored(c Context, name string, email string, imageCount int) {
	event := SubmissionStored{}
	event.Message = newMessage(c, EvtSubmissionStored, DispositionGood)

	event.Event.Name = name
	event.Event.Email = email
	event.Event.ImageCount = imageCount

	emit(event, "could not serialize SubmissionStored event",
		"name", name,
		"email", email,
		"imageCount", imageCount,
	)
}

func LogNotificationSent(c Context, recipient string) {
	event := Notification{}
	event.Message = newMessage(c, EvtNotificationSent, DispositionGood)

	event.Event.Recipient = recipient

	emit(event, "could not serialize Notification event", "recipient", recipient)
}

// LogNotificationFailed records a failed send. The stored submission the
// notification belonged to stays committed.
func LogNotificationFailed(c Context, recipient string, reason string) {
	event := Notification{}
	event.Message = newMessage(c, EvtNotificationFailed, DispositionBad)

	event.Event.Recipient = recipient
	event.Event.Reason = reason

	emit(event, "could not serialize Notification event",
		"recipient", recipient,
		"reason", reason,
	)
}
