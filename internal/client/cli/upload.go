package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/keepsake/internal/client/api"
)

// upload prompts for recording metadata and file paths and sends them to the
// server as one multipart request.
func (a *App) upload(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		fmt.Println("Error reading input:", err)
		return
	}

	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error reading input:", err)
		return
	}

	orderText, err := GetSimpleText(a.reader, "Sort order (number, optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error reading input:", err)
		return
	}

	var order int64
	if orderText != "" {
		order, err = strconv.ParseInt(orderText, 10, 64)
		if err != nil {
			fmt.Println("Sort order must be an integer")
			return
		}
	}

	audioPath, err := GetSimpleText(a.reader, "Audio file path", os.Stdout)
	if err != nil {
		fmt.Println("Error reading input:", err)
		return
	}

	photoPath, err := GetSimpleText(a.reader, "Photo file path (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error reading input:", err)
		return
	}

	recording, err := a.api.Upload(ctx, &api.UploadArgs{
		Title:       title,
		Description: description,
		Order:       order,
		AudioPath:   audioPath,
		PhotoPath:   photoPath,
	})
	if err != nil {
		fmt.Println("Error uploading recording:", err)
		return
	}

	fmt.Printf("Uploaded recording %s\n", recording.ID)
}
