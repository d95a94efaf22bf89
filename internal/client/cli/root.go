package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.role == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.role)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to Keepsake CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("keepsake %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: setpassword, upload, list, delete <id>, exit")
			} else {
				fmt.Println("Available commands: login, list, exit")
			}

		case "login":
			a.Login(ctx)
		case "setpassword":
			a.setPassword(ctx)
		case "upload":
			a.upload(ctx)
		case "list":
			a.list(ctx)
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.delete(ctx, args[0])
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
