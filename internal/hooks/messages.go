package hooks

// Canned announcement lines. Kept short: they are spoken, not read.
var notificationMessages = []string{
	"I need your input",
	"Your attention is needed",
	"I am waiting for your input",
	"Ready for your next instruction",
	"Standing by for input",
}

var startupMessages = []string{
	"Standing by with grep patterns locked and loaded. What can I find?",
	"Warmed up and ready to hunt down that bug!",
	"Cache cleared, mind fresh. What's the task?",
	"All systems nominal, ready to ship some code!",
	"Initialized and ready to make those tests pass. What needs fixing?",
	"Compiled with optimism and ready to refactor!",
	"Ready to turn coffee into code. Where do we start?",
	"Standing by like a well-indexed database!",
	"Alert and ready to parse whatever you need. What's up?",
	"Primed to help you ship that feature!",
	"Spun up and ready to debug. What's broken?",
	"Loaded and eager to make things work!",
	"Ready to dig into the details. What should I investigate?",
	"All systems go for some serious coding!",
	"Prepared to tackle whatever you throw at me. What's the challenge?",
	"Standing by to help ship something awesome!",
	"Ready to make the build green. What needs attention?",
	"Warmed up and waiting to assist!",
	"Initialized and ready to solve problems. What's the issue?",
	"All set to help you build something great!",
}

var completionMessages = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Ready for the next step.",
}

var sessionStartMessages = map[string]string{
	"startup": "Claude Code session started",
	"resume":  "Resuming previous session",
	"clear":   "Starting fresh session",
}

var sessionEndMessages = map[string]string{
	"clear":             "Session cleared",
	"logout":            "Logging out",
	"prompt_input_exit": "Session ended",
	"other":             "Session ended",
}
