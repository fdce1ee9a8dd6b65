package scriptcs

import "fmt"

const scriptFlag = "-script"

// FormatCommandArguments returns the scriptcs argument string for bootstrapFile.
func FormatCommandArguments(bootstrapFile string) string {
	return fmt.Sprintf("%s \"%s\"", scriptFlag, bootstrapFile)
}

// CommandArguments returns the same arguments split for exec.Command,
// where no shell quoting applies.
func CommandArguments(bootstrapFile string) []string {
	return []string{scriptFlag, bootstrapFile}
}
