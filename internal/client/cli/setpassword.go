package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/keepsake/internal/common"
)

// setPassword replaces the shared viewer password on the server. The new
// value is prompted twice without echo.
func (a *App) setPassword(ctx context.Context) {
	pw1, err := GetPassword("New password: ", os.Stdout)
	if err != nil {
		fmt.Println("Error reading password:", err)
		return
	}
	defer common.WipeByteArray(pw1)

	pw2, err := GetPassword("Repeat password: ", os.Stdout)
	if err != nil {
		fmt.Println("Error reading password:", err)
		return
	}
	defer common.WipeByteArray(pw2)

	if !bytes.Equal(pw1, pw2) {
		fmt.Println("Passwords do not match")
		return
	}

	if err := a.api.SetPassword(ctx, string(pw1)); err != nil {
		fmt.Println("Error setting password:", err)
		return
	}

	fmt.Println("Password set successfully")
}
