// Command usersctl calls the users API from the command line.
//
//	usersctl list
//	usersctl get ID
//	usersctl create '{"name":"Ann"}'
//	usersctl update ID '{"name":"Ann"}'
//	usersctl delete ID
//	usersctl serve --addr :8080
//
// Settings are read from USERS_* environment variables and overridden by
// flags. Failures print the error message to stderr and exit with status 1.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd, closeApp := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
