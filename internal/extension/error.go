package extension

// Error signals that an extension cannot run in the current environment,
// e.g. a required binary is missing or the OS is unsupported. Returning it
// from ValidateEnvironment disables the extension with an informational log
// line rather than an error; any other failure is treated as a bug in the
// extension.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }
