package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/client/client"
)

var getLines = GetLines

var errNotAuthorized = errors.New("not logged in and no API key configured")

func (a *App) List(ctx context.Context, name string) error {
	if name != "" {
		d, err := a.api.GetByName(ctx, name)
		if err != nil {
			return err
		}
		a.printDog(d)
		return nil
	}

	dogs, err := a.api.List(ctx)
	if err != nil {
		return err
	}
	if len(dogs) == 0 {
		fmt.Fprintln(a.out, "(catalog is empty)")
		return nil
	}
	for _, d := range dogs {
		fmt.Fprintf(a.out, "%s  %s (%d breeds)\n", d.ID, d.Name, len(d.Breeds))
	}
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	d, err := a.api.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printDog(d)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.api.HasCredentials() {
		return errNotAuthorized
	}

	in, err := a.readDog()
	if err != nil {
		return err
	}

	id, err := a.api.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created", id)
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	if !a.api.HasCredentials() {
		return errNotAuthorized
	}

	in, err := a.readDog()
	if err != nil {
		return err
	}

	d, err := a.api.Update(ctx, id, in)
	if err != nil {
		return err
	}
	a.printDog(d)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !a.api.HasCredentials() {
		return errNotAuthorized
	}

	if err := a.api.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}

func (a *App) readDog() (client.DogInput, error) {
	var in client.DogInput

	name, err := getSimpleText(a.reader, "Enter group name", a.out)
	if err != nil {
		return in, err
	}
	breeds, err := getLines(a.reader, "Enter breeds, one per line", a.out)
	if err != nil {
		return in, err
	}
	image, err := getSimpleText(a.reader, "Enter image (object key or URL)", a.out)
	if err != nil {
		return in, err
	}

	in.Name = name
	in.Image = image
	in.Breeds = make([]client.Breed, 0, len(breeds))
	for _, b := range breeds {
		in.Breeds = append(in.Breeds, client.Breed{Name: b})
	}
	return in, nil
}

func (a *App) printDog(d *client.Dog) {
	fmt.Fprintf(a.out, "ID:      %s\n", d.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", d.Name)
	fmt.Fprintf(a.out, "Image:   %s\n", d.Image)
	fmt.Fprintf(a.out, "Created: %s\n", d.CreatedAt.Format(time.RFC3339))
	if d.UpdatedAt != nil {
		fmt.Fprintf(a.out, "Updated: %s\n", d.UpdatedAt.Format(time.RFC3339))
	}

	names := make([]string, 0, len(d.Breeds))
	for _, b := range d.Breeds {
		names = append(names, b.Name)
	}
	fmt.Fprintf(a.out, "Breeds:  %s\n", strings.Join(names, ", "))
}
