package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Gallery lists one page of the public photo gallery.
func (a *App) Gallery(ctx context.Context, page int) error {
	p, err := a.client.GalleryPhotos(ctx, page)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	if len(p.Photos) == 0 {
		printlnFn("The gallery is empty.")
		return nil
	}
	for _, photo := range p.Photos {
		printlnFn(formatPhoto(photo.ID, photo.Author, photo.Description))
	}
	if p.HasMore {
		printlnFn("(more photos available)")
	}
	return nil
}

// MyPhotos lists the user's own gallery uploads.
func (a *App) MyPhotos(ctx context.Context) error {
	p, err := a.client.MyPhotos(ctx, 0, 0)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	if len(p.Photos) == 0 {
		printlnFn("No photos yet. Try 'share'.")
		return nil
	}
	for _, photo := range p.Photos {
		printlnFn(formatPhoto(photo.ID, "", photo.Description))
	}
	return nil
}

// SharePhoto uploads a local image to the public gallery.
func (a *App) SharePhoto(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter photo path", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	defer f.Close()

	photo, err := a.client.SharePhoto(ctx, filepath.Base(path), description, f)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn(fmt.Sprintf("Shared as photo %d.", photo.ID))
	return nil
}

// DeletePhoto removes one of the user's own photos.
func (a *App) DeletePhoto(ctx context.Context, id int) error {
	if err := a.client.DeletePhoto(ctx, id); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func formatPhoto(id int, author, description string) string {
	s := fmt.Sprintf("[%d]", id)
	if author != "" {
		s += " by " + author
	}
	if description != "" {
		s += " " + description
	}
	return s
}
