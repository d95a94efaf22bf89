package cli

import (
	"context"
	"fmt"
)

// delete removes a recording by id.
func (a *App) delete(ctx context.Context, id string) {
	if err := a.api.Delete(ctx, id); err != nil {
		fmt.Println("Error deleting recording:", err)
		return
	}
	fmt.Println("Recording deleted")
}
