//go:build !windows && !darwin

package shell

func openCommand(path string) (string, []string) {
	return "xdg-open", []string{path}
}
