package utils

import (
	"fmt"
	"strings"
)

// AskConfirmation asks for a yes/no answer on stdin. force answers yes
// without prompting.
func AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Printf("%s (y/N): ", message)
	var response string
	fmt.Scanln(&response)
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}
