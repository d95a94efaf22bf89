package cli

import (
	"context"
	"fmt"
)

// list prints all recordings in display order.
func (a *App) list(ctx context.Context) {
	recordings, err := a.api.List(ctx)
	if err != nil {
		fmt.Println("Error fetching recordings:", err)
		return
	}

	if len(recordings) == 0 {
		fmt.Println("No recordings yet")
		return
	}

	for _, r := range recordings {
		photo := ""
		if r.PhotoURL != "" {
			photo = " [photo]"
		}
		fmt.Printf("%s  #%d  %s%s  %s\n", r.ID, r.Order, r.Title, photo, r.CreatedAt.Format("2006-01-02"))
	}
}
