package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	WriteError      = 4
	AnalyzeError    = 5
	LoadError       = 6
)
