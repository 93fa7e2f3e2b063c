package constants

import "time"

const (
	CHANNEL_SIZE  = 100              // buffered channel size for broker/client queues
	FILE_MAX_SIZE = 50 << 20         // max attachment upload size in bytes
	REDIS_TIMEOUT = 10 * time.Minute // default cache entry lifetime

	MESSAGE_MAX_LEN   = 1000           // max message content length (runes)
	ROOM_NAME_MAX_LEN = 100            // max room name length (runes)
	EDIT_WINDOW       = 24 * time.Hour // message edit window after sentAt

	DEFAULT_PAGE_SIZE = 50  // message page size when none is given
	MAX_PAGE_SIZE     = 200 // hard cap on page size
)
