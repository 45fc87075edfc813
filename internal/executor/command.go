package executor

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Command describes an external command. A single-element Args that does not
// name an existing file is treated as a shell one-liner.
type Command struct {
	Args []string
	Dir  string
	Env  map[string]string
}

// Shell builds a Command that runs line through the configured shell.
func Shell(line string) Command {
	return Command{Args: []string{line}}
}

// Argv builds a Command from an explicit argument list.
func Argv(args ...string) Command {
	return Command{Args: args}
}

// String renders the command the way it is reported in logs and errors.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

var errEmptyCommand = errors.New("empty command")

// argv resolves the final argument vector, wrapping one-liners in shell -c.
func (c Command) argv(shell string) ([]string, error) {
	if len(c.Args) == 0 || strings.TrimSpace(c.Args[0]) == "" {
		return nil, errEmptyCommand
	}
	if len(c.Args) == 1 && !fileExists(c.Args[0]) {
		return []string{shell, "-c", c.Args[0]}, nil
	}
	return c.Args, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// environ returns the inherited environment with extraPath prepended to PATH
// and the command's own variables applied last.
func environ(extraPath string, extra map[string]string) []string {
	base := os.Environ()
	env := make([]string, 0, len(base)+len(extra)+1)
	for _, kv := range base {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		env = append(env, kv)
	}
	env = append(env, "PATH="+searchPath(extraPath))

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}

func searchPath(extraPath string) string {
	path := os.Getenv("PATH")
	if extraPath == "" {
		return path
	}
	if path == "" {
		return extraPath
	}
	return extraPath + string(os.PathListSeparator) + path
}

// lookPath finds name in the augmented search path. exec.LookPath only
// consults the parent's PATH, which would miss tools living in extraPath.
func lookPath(name, path string) string {
	if strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			return candidate
		}
	}
	return name
}
