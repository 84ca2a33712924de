package shell

func openCommand(path string) (string, []string) {
	return "rundll32", []string{"url.dll,FileProtocolHandler", path}
}
