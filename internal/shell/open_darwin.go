package shell

func openCommand(path string) (string, []string) {
	return "open", []string{path}
}
