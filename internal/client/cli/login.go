package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/keepsake/internal/common"
)

// Login verifies a password with the server and remembers the granted role.
func (a *App) Login(ctx context.Context) {
	pw, err := GetPassword("Enter password: ", os.Stdout)
	if err != nil {
		fmt.Println("Error reading password:", err)
		return
	}
	defer common.WipeByteArray(pw)

	result, err := a.api.VerifyPassword(ctx, string(pw))
	if err != nil {
		if errors.Is(err, common.ErrorNotConfigured) {
			fmt.Println("Password is not set yet. Use 'setpassword' from an admin session.")
			return
		}
		fmt.Println("Error verifying password:", err)
		return
	}

	if !result.Valid {
		fmt.Println("Invalid password")
		return
	}

	a.role = result.Role
	fmt.Printf("Logged in as %s\n", a.role)
}
