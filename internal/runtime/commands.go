package runtime

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

// Split parses a command line into argv using POSIX shell quoting rules.
// Environment variables are expanded from the current process.
func Split(line string) ([]string, error) {
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("parsing command %q: empty command", line)
	}
	return fields, nil
}

// InstallCommand builds the installer invocation for a shadow package in dir.
// omitDevFlag is appended when onlyProd is set.
func InstallCommand(line, omitDevFlag, dir string, onlyProd bool) (Command, error) {
	argv, err := Split(line)
	if err != nil {
		return Command{}, err
	}
	if onlyProd && omitDevFlag != "" {
		argv = append(argv, omitDevFlag)
	}
	return Command{Name: argv[0], Args: argv[1:], Dir: dir}, nil
}

// FormatCommand builds the formatter invocation for target, run from root.
// ignorePath is passed as --ignore-path so the workspace's own ignore rules
// do not exclude files outside it.
func FormatCommand(line, ignorePath, root, target string) (Command, error) {
	argv, err := Split(line)
	if err != nil {
		return Command{}, err
	}
	if ignorePath != "" {
		argv = append(argv, "--ignore-path", ignorePath)
	}
	argv = append(argv, target)
	return Command{Name: argv[0], Args: argv[1:], Dir: root}, nil
}
