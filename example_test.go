package ideastash_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/ideastash"
	"github.com/aretw0/ideastash/pkg/core"
)

// Example_basic opens an in-memory journal, captures an idea and marks it as a favorite.
func Example_basic() {
	ctx := context.Background()

	app, err := ideastash.Open(ctx, ideastash.WithAdapter(ideastash.AdapterMemory))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	if err := app.Load(ctx); err != nil {
		log.Fatal(err)
	}

	idea, err := app.Ideas.Add(ctx, ideastash.IdeaFields{
		Title:    "Neighborhood tool library",
		Category: core.CategoryLifestyle,
		Tags:     []string{"community"},
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Ideas.ToggleFavorite(ctx, idea.ID); err != nil {
		log.Fatal(err)
	}

	got, _ := app.Ideas.Get(idea.ID)
	fmt.Printf("%s (%s) favorite=%t\n", got.Title, got.Category.Label(), got.IsFavorite)
	// Output:
	// Neighborhood tool library (Lifestyle) favorite=true
}

// Example_seed installs the sample ideas on first run.
func Example_seed() {
	ctx := context.Background()

	app, err := ideastash.Open(ctx,
		ideastash.WithAdapter(ideastash.AdapterMemory),
		ideastash.WithSeed(ideastash.SampleIdeas),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	if err := app.Load(ctx); err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(app.Ideas.Snapshot().Ideas))
	// Output:
	// 5
}

// Example_purchase unlocks premium with the local entitlement provider.
func Example_purchase() {
	ctx := context.Background()

	app, err := ideastash.Open(ctx, ideastash.WithAdapter(ideastash.AdapterMemory))
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()
	_ = app.Load(ctx)

	offering, err := app.Subscription.Offerings(ctx)
	if err != nil {
		log.Fatal(err)
	}
	pkg, _ := offering.Package("annual")
	ok, err := app.Subscription.Purchase(ctx, pkg)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ok, app.Subscription.Snapshot().IsPro)
	// Output:
	// true true
}
