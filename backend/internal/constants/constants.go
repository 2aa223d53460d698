package constants

// JSON API success messages. Failure messages travel on the errors themselves.
const (
	MsgFriendAdded = "Friend added successfully"
	MsgMessageSent = "Message sent"
	MsgInvalidBody = "Invalid request body"
)

// Multipart form fields
const (
	FormFieldVideo          = "video"
	FormFieldProfilePicture = "profilePicture"
)

// Public URL prefixes for stored media
const (
	UploadsURLPrefix = "/uploads"
)

// Blob file name prefixes
const (
	ProfilePicturePrefix = "profile-"
)

// Component names used for named loggers
const (
	ComponentDirectory    = "directory"
	ComponentGraph        = "graph"
	ComponentConversation = "conversation"
	ComponentMedia        = "media"
	ComponentHTTP         = "http"
)
