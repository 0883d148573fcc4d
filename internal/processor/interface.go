package processor

import (
	"github.com/mauv0809/courtside/internal/notifier"
)

// Store defines the persistence operations required by the processor.
type Store interface {
	Increment(key string)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
