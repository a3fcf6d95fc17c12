package constants

// Session keys
const (
	SessionCookieName   = "task_session"
	ContextKeyUsername  = "username"
	ContextKeyRole      = "role"
	ContextKeySession   = "session"
	SessionMaxAgeSecond = 86400 * 7
)

// DateLayout is the wire format for task deadlines.
const DateLayout = "2006-01-02"

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "123"

// MaxAIGeneratedTasks caps how many drafts a single generate call may return.
const MaxAIGeneratedTasks = 20

// EmptyTaskListMessage is returned alongside an empty task list.
const EmptyTaskListMessage = "No tasks found"
