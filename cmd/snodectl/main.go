package main

import (
	"errors"
	"fmt"
	"os"

	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 1 when a dry-run found
// nodes that would change, 2 for invalid input or an unreadable batch file,
// 3 for failures while talking to the controller or anything else.
func exitCode(err error) int {
	var pending *pendingChangesError
	if errors.As(err, &pending) {
		return 1
	}

	var validationErr *snoderrors.ValidationError
	var parseErr *snoderrors.ParseError
	if errors.As(err, &validationErr) || errors.As(err, &parseErr) {
		return 2
	}

	return 3
}
