package exitcodes

// Exit codes of the cfind command.
// Scripts rely on these values; keep them stable.
const (
	Success           = 0 // Every root walked, every action succeeded
	Failure           = 1 // A root, directory or action failed; the walk still completed
	InvalidExpression = 2 // The expression could not be built; nothing was walked
)
